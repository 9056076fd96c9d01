package api

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/dvoicu/deploy-assistant/internal/api/middleware"
	"github.com/emicklei/go-restful/v3"
	"github.com/google/uuid"
)

const authHeader = "X-Auth-Token"

// TokenStore keeps the tokens issued by /login. Tokens live for the
// process lifetime only.
type TokenStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func NewTokenStore() *TokenStore {
	return &TokenStore{
		tokens: make(map[string]string),
	}
}

func (s *TokenStore) Issue(username string) string {
	token := fmt.Sprintf("token-%s-%s", uuid.NewString(), username)
	s.mu.Lock()
	s.tokens[token] = username
	s.mu.Unlock()
	return token
}

func (s *TokenStore) Lookup(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	username, ok := s.tokens[token]
	return username, ok
}

// NewAuthFilter rejects requests without a valid X-Auth-Token header.
func NewAuthFilter(store *TokenStore) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		token := req.Request.Header.Get(authHeader)
		username, ok := store.Lookup(token)
		if !ok {
			middleware.HandleError(resp, errors.New("missing or invalid authentication token"), http.StatusUnauthorized)
			return
		}

		req.SetAttribute("username", username)
		chain.ProcessFilter(req, resp)
	}
}
