package ui_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"shopkeeper/internal/ui"
)

func sampleForm() *ui.Form {
	return ui.NewForm(
		ui.Field{Name: "product_id", Kind: ui.FieldHidden},
		ui.Field{Name: "name", Label: "Name", Kind: ui.FieldText, Required: true},
		ui.Field{Name: "selling_price", Label: "Selling Price", Kind: ui.FieldNumber, Required: true},
		ui.Field{Name: "unit_type", Label: "Unit Type", Kind: ui.FieldSelect, Options: []ui.Option{
			{Value: "pcs", Label: "Pieces"},
			{Value: "kg", Label: "Kilograms"},
		}},
		ui.Field{Name: "has_expiry", Label: "Has Expiry", Kind: ui.FieldCheckbox},
	)
}

func TestFormValidate(t *testing.T) {
	t.Run("RequiredFieldMissing", func(t *testing.T) {
		form := sampleForm()
		require.NoError(t, form.Set("selling_price", "10"))
		err := form.Validate()
		require.EqualError(t, err, "Name is required")
	})

	t.Run("NumberMustParse", func(t *testing.T) {
		form := sampleForm()
		require.NoError(t, form.Set("name", "Tea"))
		require.NoError(t, form.Set("selling_price", "ten"))
		err := form.Validate()
		require.EqualError(t, err, "Selling Price must be a number")
	})

	t.Run("SelectRejectsUnknownChoice", func(t *testing.T) {
		form := sampleForm()
		require.NoError(t, form.Set("name", "Tea"))
		require.NoError(t, form.Set("selling_price", "10"))
		require.NoError(t, form.Set("unit_type", "barrel"))
		err := form.Validate()
		require.EqualError(t, err, "Unit Type has an invalid choice")
	})

	t.Run("ValidFormPasses", func(t *testing.T) {
		form := sampleForm()
		require.NoError(t, form.Set("name", "Tea"))
		require.NoError(t, form.Set("selling_price", "120.50"))
		require.NoError(t, form.Set("unit_type", "pcs"))
		require.NoError(t, form.Validate())
	})

	t.Run("UnknownFieldIsAnError", func(t *testing.T) {
		form := sampleForm()
		require.Error(t, form.Set("purchase_price", "5"))
	})
}

func TestFormEncode(t *testing.T) {
	t.Run("CheckboxOmittedWhenUnchecked", func(t *testing.T) {
		form := sampleForm()
		require.NoError(t, form.Set("name", "Tea"))
		values := form.Encode()
		_, present := values["has_expiry"]
		require.False(t, present)
		require.Equal(t, "Tea", values.Get("name"))
	})

	t.Run("CheckboxSentAsOneWhenChecked", func(t *testing.T) {
		form := sampleForm()
		require.NoError(t, form.Set("has_expiry", "on"))
		require.Equal(t, "1", form.Encode().Get("has_expiry"))
	})

	t.Run("ResetClearsValuesAndChecks", func(t *testing.T) {
		form := sampleForm()
		require.NoError(t, form.Set("name", "Tea"))
		require.NoError(t, form.Set("has_expiry", "1"))
		form.Reset()
		require.Equal(t, "", form.Field("name").Value)
		require.False(t, form.Field("has_expiry").Checked)
	})
}
