package handler

import (
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/route-service/internal/pkg/errors"
	"github.com/route-service/internal/usecase/dto"
)

// paramID reads a positive numeric path parameter.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Validation("Invalid identifier", map[string]interface{}{name: c.Params(name)})
	}
	return id, nil
}

// readUpload загружает файл multipart-формы в память
func readUpload(fh *multipart.FileHeader) (dto.FileUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return dto.FileUpload{}, errors.ErrInvalidUpload.Wrap(err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return dto.FileUpload{}, errors.ErrInvalidUpload.Wrap(err)
	}

	return dto.FileUpload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}, nil
}

func invalidBody(err error) error {
	return errors.ErrInvalidRequest.Wrap(err).WithDetails(map[string]interface{}{"body": "malformed"})
}
