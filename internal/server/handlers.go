package server

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/image/font"

	"github.com/matzehuels/penman/pkg/buildinfo"
	"github.com/matzehuels/penman/pkg/errors"
	"github.com/matzehuels/penman/pkg/fonts"
	"github.com/matzehuels/penman/pkg/languages"
	"github.com/matzehuels/penman/pkg/render"
	"github.com/matzehuels/penman/pkg/render/sink"
	"github.com/matzehuels/penman/pkg/styles"
	"github.com/matzehuels/penman/pkg/translate"
)

const (
	msgMissingParams   = "Missing required parameters"
	msgRateLimited     = "Too many requests. Please try again later."
	msgTranslateFailed = "Translation failed. Please try again."
	msgRegisterFailed  = "Registration failed"
	msgLoginFailed     = "Login failed"
	msgBadCredentials  = "Invalid credentials"
	msgRegistered      = "User registered successfully"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Current()})
}

func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, styles.All())
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, languages.All())
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translate.Request
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgMissingParams, "")
		return
	}

	res, err := s.translator.Translate(r.Context(), req)
	if err != nil {
		s.translateError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) translateError(w http.ResponseWriter, r *http.Request, err error) {
	logger := loggerFrom(r)
	switch {
	case errors.Is(err, errors.ErrCodeMissingField):
		writeError(w, http.StatusBadRequest, msgMissingParams, "")
	case errors.IsValidation(err):
		writeError(w, http.StatusBadRequest, errors.UserMessage(err), "")
	default:
		pe, ok := errors.AsProviderError(err)
		if !ok {
			logger.Error("translation error", "err", err)
			writeError(w, http.StatusInternalServerError, msgTranslateFailed, err.Error())
			return
		}
		logger.Warn("translation provider error", "status", pe.StatusCode, "timeout", pe.Timeout, "err", err)
		msg := msgTranslateFailed
		if pe.RateLimited() {
			msg = msgRateLimited
		}
		writeError(w, pe.HTTPStatus(), msg, pe.Error())
	}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := decodeJSON(r, &c); err != nil {
		writeError(w, http.StatusBadRequest, msgMissingParams, "")
		return
	}

	if err := s.auth.Register(r.Context(), c.Username, c.Password); err != nil {
		if errors.IsValidation(err) {
			writeError(w, http.StatusBadRequest, validationMessage(err), "")
			return
		}
		loggerFrom(r).Error("registration error", "username", c.Username, "err", err)
		writeError(w, http.StatusInternalServerError, msgRegisterFailed, "")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": msgRegistered})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := decodeJSON(r, &c); err != nil {
		writeError(w, http.StatusBadRequest, msgMissingParams, "")
		return
	}

	token, err := s.auth.Login(r.Context(), c.Username, c.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	case errors.IsValidation(err):
		writeError(w, http.StatusBadRequest, validationMessage(err), "")
	case errors.Is(err, errors.ErrCodeUnauthorized):
		writeError(w, http.StatusUnauthorized, msgBadCredentials, "")
	default:
		loggerFrom(r).Error("login error", "username", c.Username, "err", err)
		writeError(w, http.StatusInternalServerError, msgLoginFailed, "")
	}
}

func validationMessage(err error) string {
	if errors.Is(err, errors.ErrCodeMissingField) {
		return msgMissingParams
	}
	return errors.UserMessage(err)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	c := claimsFrom(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"userId":    c.UserID,
		"username":  c.Username,
		"expiresAt": c.ExpiresAt.Time.UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUpload)
	if err := r.ParseMultipartForm(s.cfg.MaxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid upload", err.Error())
		return
	}

	format := r.FormValue("format")
	if format == "" {
		format = "png"
	}
	if err := errors.ValidateFormat(format, "png", "pdf"); err != nil {
		writeError(w, http.StatusBadRequest, errors.UserMessage(err), "")
		return
	}

	opts := s.cfg.Render
	if v := r.FormValue("width"); v != "" {
		width, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid width", "")
			return
		}
		opts.Width = width
	}
	renderer := render.New(opts)
	if err := renderer.Options().Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid width", err.Error())
		return
	}

	size := s.cfg.FontSize
	if v := r.FormValue("size"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || n <= 0 || n > fonts.MaxSize {
			writeError(w, http.StatusBadRequest, "Invalid font size", "")
			return
		}
		size = n
	}

	face, err := s.uploadedFace(r, size)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid font file", err.Error())
		return
	}
	if face != nil {
		defer face.Close()
	}

	img, err := renderer.Render(r.Context(), render.Request{Text: r.FormValue("text"), Face: face})
	if errors.Is(err, errors.ErrCodeInvalidInput) {
		writeError(w, http.StatusBadRequest, errors.UserMessage(err), "")
		return
	}
	if err != nil {
		loggerFrom(r).Error("render error", "err", err)
		writeError(w, http.StatusInternalServerError, "Rendering failed", "")
		return
	}
	if img == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var buf bytes.Buffer
	switch format {
	case "pdf":
		data, pages, err := sink.RenderPDF(img, sink.A4(), sink.WithTitle("Handwritten text"))
		if err != nil {
			loggerFrom(r).Error("pdf export error", "err", err)
			writeError(w, http.StatusInternalServerError, "Export failed", "")
			return
		}
		buf.Write(data)
		observeExport(r, format, pages, len(data))
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="handwritten-text.pdf"`)
	default:
		if err := sink.WritePNG(&buf, img); err != nil {
			loggerFrom(r).Error("png export error", "err", err)
			writeError(w, http.StatusInternalServerError, "Export failed", "")
			return
		}
		observeExport(r, format, 1, buf.Len())
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", `attachment; filename="handwritten-text.png"`)
	}
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// uploadedFace parses the "font" file part, falling back to the
// configured font when none was sent. With neither it returns a nil face.
func (s *Server) uploadedFace(r *http.Request, size float64) (font.Face, error) {
	data, ok, err := readPart(r, "font")
	if err != nil {
		return nil, err
	}
	if !ok {
		return fonts.FaceFromFile(s.cfg.FontPath, size)
	}
	f, err := fonts.Parse(data)
	if err != nil {
		return nil, err
	}
	return f.Face(size)
}

func readPart(r *http.Request, name string) ([]byte, bool, error) {
	f, _, err := r.FormFile(name)
	if stderrors.Is(err, http.ErrMissingFile) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", name, err)
	}
	return data, true, nil
}
