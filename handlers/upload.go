package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"server/ingest"
	"server/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type UploadInvitesRequest struct {
	Data []ingest.Row `json:"data" binding:"required"`
}

// UploadInvites ingests a guest-list spreadsheet. Two upload paths: a
// multipart XLSX file parsed server-side, or a JSON array of rows already
// parsed in the browser.
func UploadInvites(c *gin.Context, user *models.User) {
	var rows []ingest.Row
	if file, err := c.FormFile("file"); err == nil {
		rows, err = rowsFromSpreadsheet(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "arquivo de planilha inválido"})
			return
		}
	} else {
		postReq := UploadInvitesRequest{}
		if err := c.ShouldBindJSON(&postReq); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dados inválidos"})
			return
		}
		rows = postReq.Data
	}
	result, err := ingest.Import(rows)
	if err != nil {
		if errors.Is(err, ingest.ErrNoInvites) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	logrus.Infof("Spreadsheet import by %s: %d added, %d updated", user.Email, result.Added, result.Updated)
	c.JSON(http.StatusOK, result)
}

// rowsFromSpreadsheet reads the first sheet of an uploaded XLSX file into
// header-keyed rows. The first physical row is the header.
func rowsFromSpreadsheet(file *multipart.FileHeader) ([]ingest.Row, error) {
	reader, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	workbook, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, err
	}
	defer workbook.Close()
	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	cells, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(cells) < 2 {
		return nil, errors.New("sheet has no data rows")
	}
	header := cells[0]
	rows := make([]ingest.Row, 0, len(cells)-1)
	for _, line := range cells[1:] {
		row := ingest.Row{}
		for i, column := range header {
			if column == "" {
				continue
			}
			if i < len(line) {
				row[column] = line[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
