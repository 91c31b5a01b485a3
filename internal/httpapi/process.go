package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pixeld/internal/pipeline"
	"pixeld/internal/raster"
)

// multipartMemory is how much of a multipart body is kept in memory before
// spilling file parts to disk.
const multipartMemory = 8 << 20

// uploadError is a 400 with a client-facing message and a metrics reason.
type uploadError struct {
	reason string
	msg    string
}

func (e uploadError) Error() string   { return e.msg }
func (e uploadError) StatusCode() int { return http.StatusBadRequest }

// processImage godoc
// @Summary      Process an image
// @Description  Runs the named model over the uploaded image and returns a PNG of the same size.
// @Description  The optional mask upload is used by inpainting only; 255 erases a pixel, 0 keeps it.
// @Tags         process
// @Accept       multipart/form-data
// @Produce      png
// @Param        model_type  path      string  true   "Model type"  Enums(inpainting, denoising, superresolution, mri)
// @Param        image       formData  file    true   "JPEG, PNG or BMP image"
// @Param        mask        formData  file    false  "Grayscale mask (inpainting)"
// @Param        divisor     query     int     false  "Center-crop both sides to a multiple of this value first"
// @Success      200  {file}    binary
// @Failure      400  {object}  types.ErrorResponse
// @Failure      500  {string}  string  "Error during processing"
// @Router       /process-image/{model_type} [post]
func (h *handlers) processImage(w http.ResponseWriter, r *http.Request) {
	modelType := chi.URLParam(r, "model_type")
	rl := newRequestLogger(r, modelType)

	kind, ok := pipeline.ParseKind(modelType)
	if !ok {
		IncrementRejectedUpload(rejectInvalidModel)
		writeJSONError(w, http.StatusBadRequest, msgInvalidModelType)
		rl.finished(http.StatusBadRequest, fmt.Errorf("unknown model type %q", modelType))
		return
	}

	img, mask, err := readUpload(w, r, kind)
	if err != nil {
		var ue uploadError
		if !errors.As(err, &ue) {
			ue = uploadError{reason: "unspecified", msg: err.Error()}
		}
		IncrementRejectedUpload(ue.reason)
		writeJSONError(w, http.StatusBadRequest, ue.msg)
		rl.finished(http.StatusBadRequest, err)
		return
	}

	divisor, err := requestDivisor(r)
	if err == nil && divisor > 0 {
		img, err = raster.CropToMultiple(img, divisor)
	}
	if err != nil {
		IncrementRejectedUpload(rejectBadDivisor)
		writeJSONError(w, http.StatusBadRequest, "Invalid divisor: "+err.Error())
		rl.finished(http.StatusBadRequest, err)
		return
	}

	b := img.Bounds()
	rl.debug().Int("width", b.Dx()).Int("height", b.Dy()).Bool("has_mask", mask != nil).Int("divisor", divisor).Msg("upload decoded")
	rl.started()

	// Join server base context with request context so shutdown cancels work too.
	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	out, err := h.svc.Process(ctx, string(kind), img, mask)
	if err != nil {
		// If context was canceled (client disconnect or shutdown), just return.
		if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
			rl.finished(499, err)
			return
		}
		status := writeServiceError(w, err)
		rl.finished(status, err)
		return
	}

	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf, out); err != nil {
		writeProcessingError(w, fmt.Errorf("encode png: %w", err))
		rl.finished(http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
	rl.finished(http.StatusOK, nil)
}

// readUpload parses the multipart body and decodes the image and, for models
// that take one, the optional mask.
func readUpload(w http.ResponseWriter, r *http.Request, kind pipeline.Kind) (img, mask image.Image, err error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, nil, uploadError{reason: rejectTooLarge, msg: fmt.Sprintf("%s (limit %d bytes)", msgUploadTooLarge, mbe.Limit)}
		}
		return nil, nil, uploadError{reason: rejectNoImage, msg: msgNoImage}
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	f, _, err := r.FormFile("image")
	if err != nil {
		return nil, nil, uploadError{reason: rejectNoImage, msg: msgNoImage}
	}
	defer f.Close()
	img, err = decodeUpload(f)
	if err != nil {
		return nil, nil, err
	}

	if !kind.AcceptsMask() {
		return img, nil, nil
	}
	mf, _, err := r.FormFile("mask")
	if errors.Is(err, http.ErrMissingFile) {
		return img, nil, nil
	}
	if err != nil {
		return nil, nil, uploadError{reason: rejectInvalidMask, msg: "Invalid mask: " + err.Error()}
	}
	defer mf.Close()
	mask, err = decodeUpload(mf)
	if err != nil {
		return nil, nil, uploadError{reason: rejectInvalidMask, msg: "Invalid mask: " + err.Error()}
	}
	return img, mask, nil
}

func decodeUpload(f multipart.File) (image.Image, error) {
	img, _, err := raster.Decode(f)
	switch {
	case err == nil:
		return img, nil
	case errors.Is(err, raster.ErrUnsupportedFormat):
		return nil, uploadError{reason: rejectUnsupported, msg: msgUnsupported}
	default:
		return nil, uploadError{reason: rejectInvalidImage, msg: "Invalid image file: " + err.Error()}
	}
}

// requestDivisor returns the crop divisor for r: the ?divisor= query when
// present, else the configured default. Zero means no crop.
func requestDivisor(r *http.Request) (int, error) {
	v := r.URL.Query().Get("divisor")
	if v == "" {
		return defaultDivisor, nil
	}
	d, err := strconv.Atoi(v)
	if err != nil || d < 1 {
		return 0, fmt.Errorf("%w: %q", raster.ErrInvalidDivisor, v)
	}
	return d, nil
}
