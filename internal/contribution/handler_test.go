package contribution

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

func (e *testEnv) tokenFor(t *testing.T, role account.Role) string {
	t.Helper()
	a := &account.Account{ID: uuid.New(), Role: role}
	e.src.accounts[a.ID] = a
	tok, err := e.tokens.Issue(a.ID.String(), string(a.Role))
	require.NoError(t, err)
	return tok
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

func contributionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "member_id", "cooperative_id", "amount", "created_at", "updated_at",
	})
}

func TestCreate_Records(t *testing.T) {
	env := newTestEnv(t)

	memberID := uuid.New()
	coopID := uuid.New()
	env.mock.ExpectQuery("INSERT INTO contributions").
		WithArgs(memberID, coopID, 250.5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(uuid.New(), time.Now(), time.Now()))

	w := env.do(t, http.MethodPost, "/api/contributions",
		`{"memberId":"`+memberID.String()+`","cooperativeId":"`+coopID.String()+`","amount":250.5}`,
		env.tokenFor(t, account.RoleManager))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var co Contribution
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &co))
	assert.Equal(t, 250.5, co.Amount)
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestCreate_RejectsNonPositiveAmount(t *testing.T) {
	env := newTestEnv(t)

	tok := env.tokenFor(t, account.RoleAdmin)
	body := `{"memberId":"` + uuid.NewString() + `","cooperativeId":"` + uuid.NewString() + `","amount":-5}`

	w := env.do(t, http.MethodPost, "/api/contributions", body, tok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Amount must be greater than 0")
}

func TestCreate_ForbiddenForPlainUsers(t *testing.T) {
	env := newTestEnv(t)

	body := `{"memberId":"` + uuid.NewString() + `","cooperativeId":"` + uuid.NewString() + `","amount":10}`
	w := env.do(t, http.MethodPost, "/api/contributions", body,
		env.tokenFor(t, account.RoleUser))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdate_AmountOnly(t *testing.T) {
	env := newTestEnv(t)

	id := uuid.New()
	memberID := uuid.New()
	coopID := uuid.New()
	env.mock.ExpectQuery("UPDATE contributions").
		WithArgs(id, 300.0).
		WillReturnRows(contributionRows().
			AddRow(id, memberID, coopID, 300.0, time.Now(), time.Now()))

	w := env.do(t, http.MethodPut, "/api/contributions/"+id.String(),
		`{"amount":300}`, env.tokenFor(t, account.RoleAdmin))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var co Contribution
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &co))
	assert.Equal(t, 300.0, co.Amount)
	assert.Equal(t, memberID, co.MemberID)
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestGet_Public(t *testing.T) {
	env := newTestEnv(t)

	id := uuid.New()
	env.mock.ExpectQuery("SELECT (.+) FROM contributions").
		WithArgs(id).
		WillReturnRows(contributionRows().
			AddRow(id, uuid.New(), uuid.New(), 100.0, time.Now(), time.Now()))

	w := env.do(t, http.MethodGet, "/api/contributions/"+id.String(), "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestDelete_AdminOnly(t *testing.T) {
	env := newTestEnv(t)

	id := uuid.New()
	w := env.do(t, http.MethodDelete, "/api/contributions/"+id.String(), "",
		env.tokenFor(t, account.RoleManager))
	assert.Equal(t, http.StatusForbidden, w.Code)

	env.mock.ExpectExec("DELETE FROM contributions").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w = env.do(t, http.MethodDelete, "/api/contributions/"+id.String(), "",
		env.tokenFor(t, account.RoleAdmin))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Contribution deleted")
	assert.NoError(t, env.mock.ExpectationsWereMet())
}
