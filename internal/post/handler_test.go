package post

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UduakOkonah/coopconnect/internal/account"
	"github.com/UduakOkonah/coopconnect/internal/auth/token"
	"github.com/UduakOkonah/coopconnect/internal/db"
	"github.com/UduakOkonah/coopconnect/internal/middleware"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeAccounts struct {
	accounts map[uuid.UUID]*account.Account
}

func (f *fakeAccounts) ByID(_ context.Context, id uuid.UUID) (*account.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return a, nil
}

type testEnv struct {
	router *gin.Engine
	mock   sqlmock.Sqlmock
	tokens *token.Service
	src    *fakeAccounts
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	tokens, err := token.NewService(testSecret, 0)
	require.NoError(t, err)

	src := &fakeAccounts{accounts: map[uuid.UUID]*account.Account{}}

	router := gin.New()
	NewHandler(NewStore(&db.DB{DB: sqlDB})).
		RegisterRoutes(router, middleware.NewAuth(tokens, src))

	return &testEnv{router: router, mock: mock, tokens: tokens, src: src}
}

func (e *testEnv) tokenFor(t *testing.T, role account.Role) (*account.Account, string) {
	t.Helper()
	a := &account.Account{ID: uuid.New(), Role: role}
	e.src.accounts[a.ID] = a
	tok, err := e.tokens.Issue(a.ID.String(), string(a.Role))
	require.NoError(t, err)
	return a, tok
}

func (e *testEnv) do(t *testing.T, method, path, body, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func postRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "content", "author_id", "cooperative_id", "created_at", "updated_at",
	})
}

func TestCreate_AuthorIsCaller(t *testing.T) {
	env := newTestEnv(t)

	manager, tok := env.tokenFor(t, account.RoleManager)
	coopID := uuid.New()

	env.mock.ExpectQuery("INSERT INTO posts").
		WithArgs("Meeting", "Friday at noon", manager.ID, coopID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(uuid.New(), time.Now(), time.Now()))

	w := env.do(t, http.MethodPost, "/api/posts",
		`{"title":"Meeting","content":"Friday at noon","cooperativeId":"`+coopID.String()+`"}`,
		tok)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var p Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	// The author comes from the token, whatever the body says.
	assert.Equal(t, manager.ID, p.AuthorID)
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestCreate_RoleMatrix(t *testing.T) {
	env := newTestEnv(t)

	body := `{"title":"T","content":"C","cooperativeId":"` + uuid.NewString() + `"}`

	w := env.do(t, http.MethodPost, "/api/posts", body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	_, userTok := env.tokenFor(t, account.RoleUser)
	w = env.do(t, http.MethodPost, "/api/posts", body, userTok)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreate_RequiresCooperative(t *testing.T) {
	env := newTestEnv(t)

	_, tok := env.tokenFor(t, account.RoleAdmin)
	w := env.do(t, http.MethodPost, "/api/posts",
		`{"title":"T","content":"C"}`, tok)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CooperativeID is required")
}

func TestList_Public(t *testing.T) {
	env := newTestEnv(t)

	env.mock.ExpectQuery("SELECT (.+) FROM posts").
		WillReturnRows(postRows().
			AddRow(uuid.New(), "B", "newer", uuid.New(), uuid.New(), time.Now(), time.Now()).
			AddRow(uuid.New(), "A", "older", uuid.New(), uuid.New(), time.Now(), time.Now()))

	w := env.do(t, http.MethodGet, "/api/posts", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var posts []Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	assert.Len(t, posts, 2)
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestUpdate_OnlyTitleAndContent(t *testing.T) {
	env := newTestEnv(t)

	_, tok := env.tokenFor(t, account.RoleManager)

	id := uuid.New()
	author := uuid.New()
	coop := uuid.New()
	env.mock.ExpectQuery("SELECT (.+) FROM posts").
		WithArgs(id).
		WillReturnRows(postRows().
			AddRow(id, "Old", "Body", author, coop, time.Now(), time.Now()))
	env.mock.ExpectQuery("UPDATE posts").
		WithArgs(id, "New", "Body").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))

	w := env.do(t, http.MethodPut, "/api/posts/"+id.String(),
		`{"title":"New"}`, tok)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var p Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "New", p.Title)
	assert.Equal(t, author, p.AuthorID)
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, tok := env.tokenFor(t, account.RoleAdmin)

	id := uuid.New()
	env.mock.ExpectExec("DELETE FROM posts").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := env.do(t, http.MethodDelete, "/api/posts/"+id.String(), "", tok)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Post not found")
	assert.NoError(t, env.mock.ExpectationsWereMet())
}
