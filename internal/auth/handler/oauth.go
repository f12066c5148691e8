package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/UduakOkonah/coopconnect/internal/httperr"
	"github.com/UduakOkonah/coopconnect/internal/oauthstate"
)

// OAuthLogin starts the authorization-code flow: a fresh state nonce
// and PKCE pair are stored server-side, then the client is redirected
// to the provider.
func (h *Handler) OAuthLogin(c *gin.Context) {
	p, err := h.providers.Get(c.Param("provider"))
	if err != nil {
		httperr.Abort(c, httperr.BadRequest("Unknown oauth provider"))
		return
	}

	flow, err := oauthstate.NewFlow()
	if err != nil {
		httperr.Abort(c, httperr.Server(err))
		return
	}

	if err := h.flows.Save(c.Request.Context(), flow.State, flow.CodeVerifier); err != nil {
		httperr.Abort(c, httperr.Server(err))
		return
	}

	c.Redirect(http.StatusFound, p.AuthCodeURL(flow.State, flow.CodeChallenge))
}

// OAuthCallback finishes the flow: state is consumed exactly once,
// the code is exchanged and verified, the identity is resolved to an
// account, and a token is issued from it.
func (h *Handler) OAuthCallback(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		httperr.Abort(c, httperr.BadRequest("Unknown oauth provider"))
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		log.Warn().
			Str("provider", providerName).
			Str("error", errParam).
			Str("desc", c.Query("error_description")).
			Msg("oauth callback returned error")
		httperr.Abort(c, httperr.Unauthorized("External authentication failed"))
		return
	}

	verifier, err := h.flows.Consume(c.Request.Context(), c.Query("state"))
	if err != nil {
		if errors.Is(err, oauthstate.ErrNotFound) {
			httperr.Abort(c, httperr.Unauthorized("Invalid state"))
			return
		}
		httperr.Abort(c, httperr.Server(err))
		return
	}

	code := c.Query("code")
	if code == "" {
		httperr.Abort(c, httperr.BadRequest("Missing authorization code"))
		return
	}

	identity, err := p.ExchangeCode(c.Request.Context(), code, verifier)
	if err != nil {
		log.Error().Err(err).Str("provider", providerName).Msg("code exchange failed")
		httperr.Abort(c, httperr.Unauthorized("External authentication failed"))
		return
	}

	acct, err := h.resolver.Resolve(c.Request.Context(), identity)
	if err != nil {
		httperr.Abort(c, httperr.Server(err))
		return
	}

	tok, err := h.tokens.Issue(acct.ID.String(), string(acct.Role))
	if err != nil {
		httperr.Abort(c, httperr.Server(err))
		return
	}

	log.Info().
		Str("user_id", acct.ID.String()).
		Str("provider", providerName).
		Msg("oauth login")

	if h.frontendURL != "" {
		c.Redirect(http.StatusFound, h.frontendURL+"?token="+url.QueryEscape(tok))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   tok,
	})
}
