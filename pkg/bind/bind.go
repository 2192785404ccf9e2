// Package bind decodes an HTTP request body into a struct. JSON,
// application/x-www-form-urlencoded and multipart/form-data bodies are
// accepted; form values are matched to fields by their json tag name.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"reflect"
	"strings"

	"github.com/orderdesk/delivery/config"
)

// ErrEmptyBody is returned by JSON when the request has no body.
var ErrEmptyBody = errors.New("request body is empty")

// Text is a string that also accepts JSON numbers and booleans, so
// {"quantity": 2} and {"quantity": "2"} bind the same way.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*t = ""
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*t = Text(str)
	case strings.HasPrefix(s, "{"), strings.HasPrefix(s, "["):
		return fmt.Errorf("expected a scalar, got %s", s[:1])
	default:
		*t = Text(s)
	}
	return nil
}

// IsMultipart reports whether r carries a multipart/form-data body.
func IsMultipart(r *http.Request) bool {
	return mediaType(r) == "multipart/form-data"
}

func mediaType(r *http.Request) string {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mt
}

// Body decodes r into dest according to its Content-Type. Anything that is
// not a form body is treated as JSON.
func Body(r *http.Request, dest any) error {
	switch mediaType(r) {
	case "multipart/form-data":
		if err := ParseMultipart(r); err != nil {
			return err
		}
		return Form(r, dest)
	case "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(nil, r.Body, config.MaxBodyBytes())
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("invalid form body: %w", err)
		}
		return Form(r, dest)
	default:
		return JSON(r, dest)
	}
}

// JSON decodes r.Body as JSON into dest. The body is capped at
// MAX_BODY_BYTES (default 10 MB).
func JSON(r *http.Request, dest any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}
	r.Body = http.MaxBytesReader(nil, r.Body, config.MaxBodyBytes())

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// ParseMultipart parses a multipart body, keeping up to MAX_BODY_BYTES in
// memory.
func ParseMultipart(r *http.Request) error {
	limit := config.MaxBodyBytes()
	r.Body = http.MaxBytesReader(nil, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		return fmt.Errorf("invalid multipart form: %w", err)
	}
	return nil
}

// File returns the uploaded file for field, or nil when none was sent.
func File(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

// Form copies parsed form values into the string-like and interface fields
// of dest. Absent keys leave fields untouched; string pointer fields are set
// only when the key is present.
func Form(r *http.Request, dest any) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("bind: dest must be a pointer to a struct")
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		vals, ok := r.Form[name]
		if !ok || len(vals) == 0 {
			continue
		}
		val := vals[0]

		fv := rv.Field(i)
		switch {
		case fv.Kind() == reflect.String:
			fv.SetString(val)
		case fv.Kind() == reflect.Interface && fv.NumMethod() == 0:
			fv.Set(reflect.ValueOf(val))
		case fv.Kind() == reflect.Ptr && fv.Type().Elem().Kind() == reflect.String:
			p := reflect.New(fv.Type().Elem())
			p.Elem().SetString(val)
			fv.Set(p)
		}
	}
	return nil
}
