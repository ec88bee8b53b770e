package server

import (
	"io"
	"log"
	"net/http"
	"strconv"
)

// ---------------------------------------------------------------------
// File Handlers
// ---------------------------------------------------------------------

// maxUploadBytes caps uploaded PDFs at 25 MiB.
const maxUploadBytes = 25 << 20

func (s *Server) handleUploadBook(w http.ResponseWriter, r *http.Request) {
	planID, userID, ok := s.authedPlanID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "Upload too large or malformed")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType != "application/pdf" {
		s.errorResponse(w, http.StatusBadRequest, "Only PDF uploads are accepted")
		return
	}

	title := r.FormValue("title")
	if title == "" {
		title = header.Filename
	}

	view, err := s.planService.UploadBook(r.Context(), planID, userID, title, contentType, file)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, view)
}

func (s *Server) handleServeBook(w http.ResponseWriter, r *http.Request) {
	planID, userID, ok := s.authedPlanID(w, r)
	if !ok {
		return
	}

	filename := r.PathValue("filename")
	rc, file, err := s.planService.OpenBook(r.Context(), planID, userID, filename)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	defer rc.Close()

	mimeType := "application/pdf"
	if file != nil && file.MimeType != "" {
		mimeType = file.MimeType
	}
	w.Header().Set("Content-Type", mimeType)
	if file != nil && file.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(file.Size, 10))
	}

	if _, err := io.Copy(w, rc); err != nil {
		// Headers are already out; nothing left to do but log.
		log.Printf("[files] failed to stream %s: %v", filename, err)
	}
}
