package ingest

import (
	"errors"
	"reflect"
	"testing"
)

func guestNames(group InviteGroup) []string {
	names := []string{}
	for _, g := range group.Guests {
		names = append(names, g.FullName)
	}
	return names
}

func TestNormalize_Grouping(t *testing.T) {
	tests := []struct {
		name   string
		rows   []Row
		groups []string
		guests [][]string
	}{
		{
			name: "every row named, one group per row",
			rows: []Row{
				{"Nome do Convite": "Família Silva", "Convidado 1": "Ana"},
				{"Nome do Convite": "Família Souza", "Convidado 1": "Bruno"},
				{"Nome do Convite": "Família Lima", "Convidado 1": "Carla"},
			},
			groups: []string{"Família Silva", "Família Souza", "Família Lima"},
			guests: [][]string{{"Ana"}, {"Bruno"}, {"Carla"}},
		},
		{
			name: "blank invite name carries forward",
			rows: []Row{
				{"Nome do convite": "Família Silva", "Nome dos convidados": "Ana"},
				{"Nome do convite": "", "Nome dos convidados": "Bruno"},
			},
			groups: []string{"Família Silva"},
			guests: [][]string{{"Ana", "Bruno"}},
		},
		{
			name: "multi row blocks with several guests each",
			rows: []Row{
				{"Nome do Convite": "Família Silva", "Convidado 1": "Ana", "Convidado 2": "Beto"},
				{"Convidado 1": "Caio"},
				{"Nome do Convite": "Amigos do Trabalho", "Convidado 1": "Dino"},
				{"Convidado 1": "Edu"},
				{"Convidado 1": "Fabi"},
			},
			groups: []string{"Família Silva", "Amigos do Trabalho"},
			guests: [][]string{{"Ana", "Beto", "Caio"}, {"Dino", "Edu", "Fabi"}},
		},
		{
			name: "rows before the first named invite are dropped",
			rows: []Row{
				{"Convidado 1": "Perdido"},
				{"Nome do Convite": "Família Silva", "Convidado 1": "Ana"},
			},
			groups: []string{"Família Silva"},
			guests: [][]string{{"Ana"}},
		},
		{
			name: "same name later in the file starts a fresh group",
			rows: []Row{
				{"Nome do Convite": "Família Silva", "Convidado 1": "Ana"},
				{"Nome do Convite": "Família Souza", "Convidado 1": "Bruno"},
				{"Nome do Convite": "Família Silva", "Convidado 1": "Caio"},
			},
			groups: []string{"Família Silva", "Família Souza", "Família Silva"},
			guests: [][]string{{"Ana"}, {"Bruno"}, {"Caio"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups, err := Normalize(tt.rows)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			gotNames := []string{}
			for _, g := range groups {
				gotNames = append(gotNames, g.Name)
			}
			if !reflect.DeepEqual(gotNames, tt.groups) {
				t.Errorf("group names = %v, want %v", gotNames, tt.groups)
			}
			for i, g := range groups {
				if !reflect.DeepEqual(guestNames(g), tt.guests[i]) {
					t.Errorf("guests of group %d (%q) = %v, want %v", i, g.Name, guestNames(g), tt.guests[i])
				}
			}
		})
	}
}

func TestNormalize_ColumnAliases(t *testing.T) {
	tests := []struct {
		name  string
		row   Row
		phone string
	}{
		{"canonical header", Row{"Nome do Convite": "A", "Telefone": "11999990000"}, "11999990000"},
		{"lowercase header", Row{"nome_convite": "A", "telefone": "11999990000"}, "11999990000"},
		{"english header", Row{"Nome": "A", "Phone": "11999990000"}, "11999990000"},
		{"celular fallback", Row{"Nome do Convite": "A", "Celular": "11999990000"}, "11999990000"},
		{"first non-empty alias wins", Row{"Nome do Convite": "A", "Telefone": "", "Celular": "11999990000"}, "11999990000"},
		{"formatted phone is normalized", Row{"Nome do Convite": "A", "Telefone": "(11) 99999-0000"}, "11999990000"},
		{"numeric cell", Row{"Nome do Convite": "A", "Telefone": float64(11999990000)}, "11999990000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups, err := Normalize([]Row{tt.row})
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if groups[0].Phone != tt.phone {
				t.Errorf("phone = %q, want %q", groups[0].Phone, tt.phone)
			}
		})
	}
}

func TestNormalize_InviteFieldsFromFirstPopulatedRow(t *testing.T) {
	rows := []Row{
		{"Nome do Convite": "Família Silva", "Convidado 1": "Ana"},
		{"Telefone": "(11) 98888-7777", "DDI": "55", "Grupo": "Filhas", "Observação": "chega cedo", "Convidado 1": "Bruno"},
		{"Telefone": "123", "Convidado 1": "Caio"},
	}
	groups, err := Normalize(rows)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	g := groups[0]
	if g.Phone != "11988887777" || g.DDI != "55" || g.GroupLabel != "Filhas" || g.Observation != "chega cedo" {
		t.Errorf("invite fields = %+v, want the second row's values", g)
	}
	if want := []string{"Ana", "Bruno", "Caio"}; !reflect.DeepEqual(guestNames(g), want) {
		t.Errorf("guests = %v, want %v", guestNames(g), want)
	}
}

func TestNormalize_GuestClassificationFields(t *testing.T) {
	rows := []Row{
		{
			"Nome do Convite": "Família Silva",
			"Convidado 1":     "Ana",
			"Gênero":          "F",
			"Faixa Etária":    "Adulto",
			"Custo/Pagamento": "Inteira",
			"Situação":        "Pendente",
			"Mesa":            float64(7),
		},
	}
	groups, err := Normalize(rows)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	guest := groups[0].Guests[0]
	if guest.Gender != "F" || guest.AgeGroup != "Adulto" || guest.CostPayment != "Inteira" ||
		guest.StatusText != "Pendente" || guest.TableNumber != 7 {
		t.Errorf("guest = %+v", guest)
	}
}

func TestNormalize_NumberedGuestColumnsInOrder(t *testing.T) {
	row := Row{
		"Nome do Convite": "Família Silva",
		"Convidado 2":     "Bruno",
		"Convidado 1":     "Ana",
		"Convidado 10":    "Julia",
		"Guest 3":         "Caio",
	}
	groups, err := Normalize([]Row{row})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	want := []string{"Ana", "Bruno", "Caio", "Julia"}
	if !reflect.DeepEqual(guestNames(groups[0]), want) {
		t.Errorf("guests = %v, want %v", guestNames(groups[0]), want)
	}
}

func TestNormalize_InviteNameColumnIsNotAGuest(t *testing.T) {
	rows := []Row{
		{"Nome do Convite": "Família Silva", "Nome do Convidado": "Ana"},
	}
	groups, err := Normalize(rows)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if want := []string{"Ana"}; !reflect.DeepEqual(guestNames(groups[0]), want) {
		t.Errorf("guests = %v, want %v", guestNames(groups[0]), want)
	}
}

func TestNormalize_NoRecognizableRows(t *testing.T) {
	for _, rows := range [][]Row{
		nil,
		{},
		{{"Coluna A": "x"}, {"Coluna B": "y"}},
	} {
		if _, err := Normalize(rows); !errors.Is(err, ErrNoInvites) {
			t.Errorf("Normalize(%v) error = %v, want ErrNoInvites", rows, err)
		}
	}
}

func TestNormalize_EmptyGuestCellsSkipped(t *testing.T) {
	rows := []Row{
		{"Nome do Convite": "Família Silva", "Convidado 1": "Ana", "Convidado 2": "  ", "Convidado 3": ""},
	}
	groups, err := Normalize(rows)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if want := []string{"Ana"}; !reflect.DeepEqual(guestNames(groups[0]), want) {
		t.Errorf("guests = %v, want %v", guestNames(groups[0]), want)
	}
}
