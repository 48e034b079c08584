package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetform-go/pkg/sheetform"
	"github.com/ukaji3/sheetform-go/pkg/sheetform/output"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	xlsxFilename    = "converted_data.xlsx"
	warningsHeader  = "X-Sheetform-Warnings"
	// multipartOverhead leaves room for multipart boundaries and headers around the file.
	multipartOverhead = 1 << 20
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type handlers struct {
	cfg Config
	log logrus.FieldLogger
}

type errorBody struct {
	Detail string `json:"detail"`
}

func (h *handlers) root(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Spreadsheet to JSON and form conversion API"})
}

func (h *handlers) healthz(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// convert decodes an uploaded workbook into JSON. include_format selects the formatted mode.
func (h *handlers) convert(w http.ResponseWriter, r *http.Request) {
	includeFormat := false
	if raw := r.URL.Query().Get("include_format"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.fail(w, r, sheetform.NewInputValidationError("include_format", "", fmt.Sprintf("%q is not a boolean", raw)))
			return
		}
		includeFormat = v
	}

	filename, data, err := h.readUpload(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	opts := h.cfg.options()
	opts.Mode = sheetform.ModeFor(includeFormat)
	wb, err := sheetform.Decode(filename, data, opts)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	body, err := output.ToJSON(wb, false)
	if err != nil {
		h.fail(w, r, sheetform.NewWriteError("", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// convertToExcel builds a workbook from a JSON body and returns it as an attachment.
func (h *handlers) convertToExcel(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.cfg.options().UploadLimit()))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := sheetform.Encode(payload, h.cfg.options())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	for _, warning := range res.Warnings {
		h.log.WithFields(logrus.Fields{
			"sheet":     warning.Sheet,
			"cell":      warning.Cell,
			"component": warning.Component,
		}).WithError(warning.Err).Debug("dropped on encode")
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+xlsxFilename)
	w.Header().Set(warningsHeader, strconv.Itoa(len(res.Warnings)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

// convertToForm renders an uploaded workbook as an HTML form page.
func (h *handlers) convertToForm(w http.ResponseWriter, r *http.Request) {
	filename, data, err := h.readUpload(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	page, err := sheetform.RenderForm(filename, data, h.cfg.options())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, page)
}

// readUpload returns the name and content of the multipart "file" field.
func (h *handlers) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	limit := h.cfg.options().UploadLimit()
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	if err := r.ParseMultipartForm(limit); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return "", nil, err
		}
		return "", nil, sheetform.NewInputValidationError("file", "", "expected a multipart upload: "+err.Error())
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, sheetform.NewInputValidationError("file", "", "missing file field")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return "", nil, err
	}
	return header.Filename, data, nil
}

// fail maps an error onto a status code: client errors are 4xx, conversion failures 500.
func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	var mbe *http.MaxBytesError
	switch {
	case errors.As(err, &mbe):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, sheetform.ErrInvalidInput):
		status = http.StatusBadRequest
	}

	entry := h.log.WithFields(logrus.Fields{
		"path":   r.URL.Path,
		"status": status,
	}).WithError(err)
	if status >= http.StatusInternalServerError {
		entry.Error("conversion failed")
	} else {
		entry.Info("request rejected")
	}
	h.writeJSON(w, status, errorBody{Detail: err.Error()})
}

func (h *handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		h.log.WithError(err).Error("encode response")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
