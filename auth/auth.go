package auth

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.loginHandler(w, r)
}
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.registerHandler(w, r)
}
func (h *Handlers) LogoutUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.logoutUserHandler(w, r)
}
func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.refreshTokenHandler(w, r)
}
