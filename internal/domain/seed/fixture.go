package seed

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"pet-marketplace/internal/domain/pets"
)

//go:embed demo.yaml
var demoYAML []byte

type Account struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
}

// ListingFixture: age y price aceptan número o string, igual que la API.
type ListingFixture struct {
	Owner       string   `yaml:"owner"`
	Name        string   `yaml:"name"`
	Breed       string   `yaml:"breed"`
	Category    string   `yaml:"category"`
	Age         any      `yaml:"age"`
	Price       any      `yaml:"price"`
	Location    string   `yaml:"location"`
	Description string   `yaml:"description"`
	HealthInfo  string   `yaml:"healthInfo"`
	Images      []string `yaml:"images"`
}

type Fixture struct {
	Accounts []Account        `yaml:"accounts"`
	Listings []ListingFixture `yaml:"listings"`
}

// DefaultFixture devuelve el fixture embebido (cuentas demo admin/user).
func DefaultFixture() (Fixture, error) {
	return ParseFixture(demoYAML)
}

// LoadFixture lee un fixture YAML de disco; path vacío => DefaultFixture.
func LoadFixture(path string) (Fixture, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultFixture()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("seed: read fixture: %w", err)
	}
	return ParseFixture(b)
}

func ParseFixture(b []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Fixture{}, fmt.Errorf("seed: parse fixture: %w", err)
	}
	for i, a := range f.Accounts {
		if strings.TrimSpace(a.Email) == "" || a.Password == "" {
			return Fixture{}, fmt.Errorf("seed: account %d: email and password required", i)
		}
	}
	return f, nil
}

func (l ListingFixture) input() pets.CreateInput {
	return pets.CreateInput{
		Name:        l.Name,
		Breed:       l.Breed,
		Category:    l.Category,
		Age:         flex(l.Age),
		Price:       flex(l.Price),
		Location:    l.Location,
		Description: l.Description,
		HealthInfo:  l.HealthInfo,
		Images:      l.Images,
	}
}

func flex(v any) pets.FlexValue {
	switch t := v.(type) {
	case nil:
		return pets.FlexValue{}
	case int:
		return pets.Number(float64(t))
	case float64:
		return pets.Number(t)
	case string:
		return pets.Text(t)
	case bool:
		return pets.Text(strconv.FormatBool(t))
	default:
		return pets.Text(fmt.Sprint(t))
	}
}
