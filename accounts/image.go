package accounts

import (
	"fmt"
	"net/http"
	"path/filepath"

	"ultrarent/db"
	"ultrarent/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
)

const accountPicDir = "static/accountpic"

// UploadImage accepts a multipart "image" field, stores the original plus a
// 300px-wide thumbnail, and points the account at the new image.
func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	a, err := h.Store.GetAccount(r.Context(), id)
	if err == db.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "account not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "failed to decode image")
		return
	}

	fileName := utils.GenerateRandomString(16) + ".jpg"
	originalPath := filepath.Join(accountPicDir, fileName)
	thumbDir := filepath.Join(accountPicDir, "thumb")

	if err := utils.EnsureDir(accountPicDir); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create upload directory")
		return
	}
	if err := utils.EnsureDir(thumbDir); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create thumbnail directory")
		return
	}

	if err := imaging.Save(img, originalPath); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to save image")
		return
	}
	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, filepath.Join(thumbDir, fileName)); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to save thumbnail")
		return
	}

	a.ImageURL = fmt.Sprintf("/static/accountpic/%s", fileName)
	if err := h.Store.PutAccount(r.Context(), a); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db update failed")
		return
	}
	h.Bus.Publish()

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"imageUrl": a.ImageURL})
}
