package server

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/agawojdecka/polarify/internal/domain"
	apperrors "github.com/agawojdecka/polarify/internal/errors"
	"github.com/labstack/echo/v4"
)

// opinionsFromUpload extracts the opinion batch from a multipart CSV upload
// under the "file" form field. Rows are `id,content`; rows with fewer than
// two fields are skipped silently.
func opinionsFromUpload(c echo.Context) ([]domain.Opinion, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, apperrors.ValidationError("missing file upload")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "text/csv" && contentType != "application/vnd.ms-excel" {
		return nil, apperrors.ValidationError("Invalid file type. Please upload a CSV.")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.InternalError("failed to open uploaded file", err)
	}
	defer file.Close()

	opinions, err := parseOpinionsCSV(file)
	if err != nil {
		return nil, apperrors.ValidationError("malformed CSV upload").WithField("cause", err.Error())
	}
	return opinions, nil
}

func parseOpinionsCSV(r io.Reader) ([]domain.Opinion, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var opinions []domain.Opinion
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		if len(record) < 2 {
			continue
		}
		opinions = append(opinions, domain.Opinion{ID: record[0], Content: record[1]})
	}

	return opinions, nil
}
