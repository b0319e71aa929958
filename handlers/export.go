package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"server/db"
	"server/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Export column order matches the spreadsheets the hosts circulate, so a
// fresh export can be re-imported as-is
var exportHeaders = []string{
	"Nome do Convite", "DDI", "Telefone", "Grupo", "Observação",
	"Nome do Convidado", "Gênero", "Faixa Etária", "Custo/Pagamento",
	"Situação", "Mesa", "Confirmado", "Mensagem",
	"Data de Criação", "Última Atualização",
}

// ExportInvites returns the confirmation data, one row per guest (or one
// bare row for a guest-less invite). JSON by default, an XLSX workbook
// with ?format=xlsx.
func ExportInvites(c *gin.Context, user *models.User) {
	var invites []models.Invite
	err := db.Instance.
		Preload("Guests", func(tx *gorm.DB) *gorm.DB { return tx.Order("full_name") }).
		Order("name_on_invite").
		Find(&invites).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	rows := [][]string{}
	for _, invite := range invites {
		if len(invite.Guests) == 0 {
			rows = append(rows, exportRow(invite, nil))
			continue
		}
		for i := range invite.Guests {
			rows = append(rows, exportRow(invite, &invite.Guests[i]))
		}
	}
	if c.Query("format") == "xlsx" {
		writeWorkbook(c, rows)
		return
	}
	result := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		entry := map[string]string{}
		for i, header := range exportHeaders {
			entry[header] = row[i]
		}
		result = append(result, entry)
	}
	c.JSON(http.StatusOK, result)
}

func exportRow(invite models.Invite, guest *models.Guest) []string {
	row := []string{
		invite.NameOnInvite,
		invite.DDI,
		invite.Phone,
		invite.GroupLabel,
		invite.Observation,
		"", "", "", "", "", "", "", "",
		formatDay(invite.CreatedAt),
		formatDay(invite.UpdatedAt),
	}
	if guest == nil {
		return row
	}
	row[5] = guest.FullName
	row[6] = guest.Gender
	row[7] = guest.AgeGroup
	row[8] = guest.CostPayment
	row[9] = string(guest.Status)
	if guest.TableNumber > 0 {
		row[10] = strconv.Itoa(guest.TableNumber)
	}
	if guest.IsConfirmed() {
		row[11] = "Sim"
	} else {
		row[11] = "Não"
	}
	row[12] = guest.Message
	row[14] = formatDay(guest.UpdatedAt)
	return row
}

func formatDay(unix int64) string {
	if unix == 0 {
		return ""
	}
	return time.Unix(unix, 0).Format("2006-01-02")
}

func writeWorkbook(c *gin.Context, rows [][]string) {
	workbook := excelize.NewFile()
	defer workbook.Close()
	const sheet = "Confirmações"
	workbook.SetSheetName(workbook.GetSheetName(0), sheet)
	_ = workbook.SetSheetRow(sheet, "A1", &exportHeaders)
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = workbook.SetSheetRow(sheet, cell, &row)
	}
	fileName := fmt.Sprintf("confirmacoes-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
