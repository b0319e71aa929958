package ingest

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"server/utils"
)

// Row is one spreadsheet row as parsed by the uploader: header -> cell.
// Cells arrive as strings or numbers depending on the parser.
type Row map[string]interface{}

// GuestEntry is one guest cell plus the classification cells of its row
type GuestEntry struct {
	FullName    string
	Gender      string
	AgeGroup    string
	CostPayment string
	StatusText  string
	TableNumber int
}

// InviteGroup is one invite block assembled from consecutive rows
type InviteGroup struct {
	Name        string
	DDI         string
	Phone       string
	GroupLabel  string
	Observation string
	Guests      []GuestEntry
}

var ErrNoInvites = errors.New("no recognizable invite rows in spreadsheet")

// Header aliases per logical field, checked in order, first non-empty wins.
// Sheets come from several exports so both Portuguese and English headers
// show up, with inconsistent casing.
var (
	inviteNameAliases  = []string{"Nome do Convite", "Nome do convite", "nome_convite", "Nome"}
	phoneAliases       = []string{"Telefone", "telefone", "Phone", "Celular"}
	ddiAliases         = []string{"DDI", "ddi"}
	groupAliases       = []string{"Grupo", "grupo", "Group"}
	observationAliases = []string{"Observação", "Observacao", "observacao", "Obs"}
	genderAliases      = []string{"Gênero", "Genero", "Sexo"}
	ageGroupAliases    = []string{"Faixa Etária", "Faixa Etaria", "Idade"}
	paymentAliases     = []string{"Custo/Pagamento", "Pagamento"}
	statusAliases      = []string{"Situação", "Situacao", "Status"}
	tableAliases       = []string{"Mesa", "Mesa Nº", "Mesa No"}
)

// Normalize folds an ordered row sequence into invite groups using the
// carry-forward rule: a row naming an invite starts a new group, a row with
// a blank invite-name cell extends the most recently started group. Rows
// seen before any invite name are dropped. A name repeated later in the
// file starts its own group; the importer's roster replacement then makes
// the last block win.
func Normalize(rows []Row) ([]InviteGroup, error) {
	groups := []InviteGroup{}
	for _, row := range rows {
		if name := cellByAliases(row, inviteNameAliases); name != "" {
			groups = append(groups, InviteGroup{Name: name})
		}
		if len(groups) == 0 {
			continue
		}
		group := &groups[len(groups)-1]
		if !group.hasInviteFields() {
			group.DDI = cellByAliases(row, ddiAliases)
			group.Phone = utils.NormalizePhone(cellByAliases(row, phoneAliases))
			group.GroupLabel = cellByAliases(row, groupAliases)
			group.Observation = cellByAliases(row, observationAliases)
		}
		group.Guests = append(group.Guests, guestsOfRow(row)...)
	}
	if len(groups) == 0 {
		return nil, ErrNoInvites
	}
	return groups, nil
}

func (g *InviteGroup) hasInviteFields() bool {
	return g.DDI != "" || g.Phone != "" || g.GroupLabel != "" || g.Observation != ""
}

// guestsOfRow extracts every non-empty guest-name cell of one row,
// attaching the row's classification cells to each
func guestsOfRow(row Row) []GuestEntry {
	guests := []GuestEntry{}
	gender := cellByAliases(row, genderAliases)
	ageGroup := cellByAliases(row, ageGroupAliases)
	payment := cellByAliases(row, paymentAliases)
	statusText := cellByAliases(row, statusAliases)
	tableNumber := cellInt(row, tableAliases)
	for _, header := range guestColumns(row) {
		name := cellString(row[header])
		if name == "" {
			continue
		}
		guests = append(guests, GuestEntry{
			FullName:    name,
			Gender:      gender,
			AgeGroup:    ageGroup,
			CostPayment: payment,
			StatusText:  statusText,
			TableNumber: tableNumber,
		})
	}
	return guests
}

// guestColumns discovers the guest-name headers of a row: the explicit
// numbered columns first, then any other header containing a guest token,
// excluding the headers already claimed by the invite-name field
func guestColumns(row Row) []string {
	seen := map[string]bool{}
	columns := []string{}
	add := func(header string) {
		if seen[header] {
			return
		}
		seen[header] = true
		columns = append(columns, header)
	}
	for i := 1; i <= 10; i++ {
		for _, pattern := range []string{"Convidado %d", "Guest %d", "Nome %d", "convidado_%d"} {
			header := fmt.Sprintf(pattern, i)
			if cellString(row[header]) != "" {
				add(header)
			}
		}
	}
	rest := []string{}
	for header := range row {
		if isInviteNameHeader(header) || seen[header] {
			continue
		}
		lower := strings.ToLower(header)
		if strings.Contains(lower, "convidado") || strings.Contains(lower, "guest") || strings.Contains(lower, "nome") {
			rest = append(rest, header)
		}
	}
	sort.Strings(rest) // map order is random, keep guests deterministic
	for _, header := range rest {
		add(header)
	}
	return columns
}

func isInviteNameHeader(header string) bool {
	for _, alias := range inviteNameAliases {
		if header == alias {
			return true
		}
	}
	return false
}

func cellByAliases(row Row, aliases []string) string {
	for _, alias := range aliases {
		if v := cellString(row[alias]); v != "" {
			return v
		}
	}
	return ""
}

func cellInt(row Row, aliases []string) int {
	v := cellByAliases(row, aliases)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// cellString normalizes a raw cell to a trimmed string. Numeric cells are
// common for phone and table columns when sheets are parsed browser-side.
func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}
