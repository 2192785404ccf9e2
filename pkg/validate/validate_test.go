package validate_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/delivery/pkg/validate"
)

type orderInput struct {
	Name     string `json:"name"     validate:"required"`
	Menu     any    `json:"menu"     validate:"required"`
	Quantity string `json:"quantity" validate:"required"`
	Image    string `json:"image"    validate:"nullable,base64"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(orderInput{
		Name:     "Alice",
		Menu:     map[string]any{"id": "burger"},
		Quantity: " 2 ",
		Image:    base64.StdEncoding.EncodeToString([]byte("png")),
	})
	assert.False(t, validate.HasErrors(errs), "%v", errs)
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(&orderInput{Name: "   "})
	require.True(t, validate.HasErrors(errs))
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "menu")
	assert.Contains(t, errs, "quantity")
	assert.NotContains(t, errs, "image")
}

func TestNilAndEmptyInterfaceAreMissing(t *testing.T) {
	errs := validate.Struct(orderInput{Name: "a", Menu: "", Quantity: "1"})
	assert.Contains(t, errs, "menu")
}

func TestBase64Rule(t *testing.T) {
	errs := validate.Struct(orderInput{Name: "a", Menu: "Burger", Quantity: "1", Image: "***"})
	assert.Equal(t, "The image must be valid base64.", errs["image"])
}

func TestUntaggedAndUnknownRulesAreIgnored(t *testing.T) {
	type loose struct {
		Note  string
		Label string `json:"label" validate:"max=3"`
	}
	assert.Empty(t, validate.Struct(loose{Label: "longer than three"}))
	assert.Empty(t, validate.Struct("not a struct"))
}

func TestErrorsMessageIsStable(t *testing.T) {
	errs := validate.Struct(orderInput{})
	assert.Equal(t,
		"The menu field is required. The name field is required. The quantity field is required.",
		errs.Error())
}

func TestDecodeBase64Variants(t *testing.T) {
	raw := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00}
	std := base64.StdEncoding.EncodeToString(raw)
	unpadded := base64.RawStdEncoding.EncodeToString(raw)

	for name, in := range map[string]string{
		"padded":   std,
		"unpadded": unpadded,
		"data url": "data:image/jpeg;base64," + std,
		"wrapped":  std[:4] + "\n" + std[4:],
	} {
		got, err := validate.DecodeBase64(in)
		require.NoError(t, err, name)
		assert.Equal(t, raw, got, name)
	}

	_, err := validate.DecodeBase64("***not base64***")
	assert.Error(t, err)
	_, err = validate.DecodeBase64("")
	assert.Error(t, err)
}
