package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go-applicant-tracker/internal/domain"
	"go-applicant-tracker/pkg/apperror"
	"go-applicant-tracker/pkg/security"
	"go-applicant-tracker/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const invalidData = "The given data was invalid."

// RegisterBindingValidators installs the custom rules on gin's validator.
func RegisterBindingValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}
}

// bindError turns a binding failure into a 422 with field keyed messages.
func bindError(err error) error {
	return apperror.Validation(invalidData, validation.FormatValidationErrors(err))
}

func requiredField(field string) error {
	label := strings.ReplaceAll(field, "_", " ")
	return apperror.Validation(invalidData, map[string][]string{
		field: {fmt.Sprintf("The %s field is required.", label)},
	})
}

// pathID parses the :id path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.NotFound("Resource not found.")
	}
	return id, nil
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

// certificateUpload reads an optional multipart file. Oversized files are
// cut at one byte past the limit so validation can still reject them.
func certificateUpload(c *gin.Context, field string) (*domain.CertificateUpload, error) {
	if field == "" {
		return nil, nil
	}
	header, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile || err == http.ErrNotMultipart {
			return nil, nil
		}
		return nil, apperror.Validation(invalidData, map[string][]string{
			field: {fmt.Sprintf("The %s failed to upload.", field)},
		})
	}
	f, err := header.Open()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, security.MaxCertificateSize+1))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.CertificateUpload{Filename: header.Filename, Data: data}, nil
}

// flexString accepts a JSON string or number, so ids like 7 and "7" bind alike.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func (f *flexString) ptr() *string {
	if f == nil {
		return nil
	}
	s := string(*f)
	return &s
}
