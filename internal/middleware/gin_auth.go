package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/UduakOkonah/coopconnect/internal/account"
	"github.com/UduakOkonah/coopconnect/internal/httperr"
)

// accountKey is the gin context key the authenticated account lives
// under between RequireAuth and the handler.
const accountKey = "authAccount"

// CurrentAccount returns the account attached by RequireAuth.
func CurrentAccount(c *gin.Context) (*account.Account, bool) {
	v, ok := c.Get(accountKey)
	if !ok {
		return nil, false
	}
	acct, ok := v.(*account.Account)
	return acct, ok
}

// RequireAuth adapts the Authenticate guard to gin and attaches the
// resolved account to the request context.
func (a *Auth) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		acct, herr := a.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if herr != nil {
			httperr.Abort(c, herr)
			return
		}
		c.Set(accountKey, acct)
		c.Next()
	}
}

// RequireRoles adapts the Authorize guard to gin. It must be mounted
// after RequireAuth.
func RequireRoles(allowed ...account.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		acct, _ := CurrentAccount(c)
		if herr := Authorize(acct, allowed...); herr != nil {
			httperr.Abort(c, herr)
			return
		}
		c.Next()
	}
}
