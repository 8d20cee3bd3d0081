package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/esign/internal/pkg/goerror"
)

// DefaultMaxMultipartMemory bounds in-memory multipart parsing; larger
// parts spill to temporary files.
const DefaultMaxMultipartMemory = 32 << 20

// Request wraps http.Request with helpers for inbound handlers.
type Request struct {
	*http.Request
}

// File is one multipart file part read fully into memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// GetParam reads a path parameter stored by httprouter.
func (r *Request) GetParam(key string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(key)
}

func (r *Request) GetParamInt64(key string) (int64, error) {
	v, err := strconv.ParseInt(r.GetParam(key), 10, 64)
	if err != nil {
		return 0, goerror.NewInvalidFormat(key + " must be an integer")
	}
	return v, nil
}

func (r *Request) GetQuery(key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// GetQueryInt32 returns 0 when the query is absent.
func (r *Request) GetQueryInt32(key string) (int32, error) {
	q := r.GetQuery(key)
	if q == "" {
		return 0, nil
	}

	v, err := strconv.ParseInt(q, 10, 32)
	if err != nil {
		return 0, goerror.NewInvalidFormat(key + " must be an integer")
	}
	return int32(v), nil
}

// DecodeBody decodes exactly one JSON value into dst.
func (r *Request) DecodeBody(dst any) error {
	if r == nil || r.Body == nil {
		return goerror.NewInvalidFormat()
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return goerror.NewInvalidFormat()
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return goerror.NewInvalidFormat()
	}

	return nil
}

// ParseMultipart parses a multipart/form-data body once; later FormValue
// and FormFile calls read from the parsed form.
func (r *Request) ParseMultipart(maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return goerror.NewInvalidFormat("Invalid request content-type")
	}
	if maxMemory <= 0 {
		maxMemory = DefaultMaxMultipartMemory
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return goerror.NewInvalidFormat("Invalid multipart body")
	}
	return nil
}

// FormText returns a trimmed multipart or urlencoded text field.
func (r *Request) FormText(key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// FormFile reads the named multipart file. A missing part yields (nil, nil).
func (r *Request) FormFile(key string) (*File, error) {
	f, fh, err := r.Request.FormFile(key)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, goerror.NewInvalidFormat("Invalid file " + key)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, goerror.NewInvalidFormat("Invalid file " + key)
	}

	return &File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
