package handler

import (
	"io"
	"mime/multipart"
	"strconv"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// errBadQuery marks a query parameter that failed to parse.
var errBadQuery = errors.New("invalid query parameter")

func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrap(errBadQuery, name)
	}

	return n, nil
}

func queryInt64Ptr(c echo.Context, name string) (*int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errors.Wrap(errBadQuery, name)
	}

	return &n, nil
}

func queryBool(c echo.Context, name string) bool {
	v, err := strconv.ParseBool(c.QueryParam(name))

	return err == nil && v
}

// readUploads reads the multipart files under field.
func readUploads(c echo.Context, field string) ([]usecase.UploadedFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse multipart form")
	}

	headers := form.File[field]
	files := make([]usecase.UploadedFile, 0, len(headers))
	for _, header := range headers {
		data, err := readPart(header)
		if err != nil {
			return nil, err
		}
		files = append(files, usecase.UploadedFile{Filename: header.Filename, Data: data})
	}

	return files, nil
}

func readPart(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", header.Filename)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", header.Filename)
	}

	return data, nil
}
