package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MixOptimizer_Go/internal/report"
)

func TestHandleEvaluateMix(t *testing.T) {
	router := testRouter(testService(t), testProfiles(t))

	t.Run("Success", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/v1/mix", MixRequest{
			BaseItem:  "Methamphetamine",
			Modifiers: []string{"Gasoline", "Cuke", "Mouth Wash", "Banana"},
		})

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		view := decode[report.View](t, rec)
		assert.True(t, view.Found)
		assert.Equal(t, "Methamphetamine", view.BaseItem)
		assert.Equal(t, []string{"Gasoline", "Cuke", "Mouth Wash", "Banana"}, view.Modifiers)
		assert.Equal(t, int64(13), view.Cost)
		assert.Equal(t, int64(148), view.SellPrice)
		assert.Equal(t, int64(135), view.Profit)
		assert.InDelta(t, 1.12, view.Multiplier, 1e-9)
		assert.Nil(t, view.Stats)
	})

	t.Run("Names Are Case Insensitive", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/v1/mix", MixRequest{
			BaseItem:  "og kush",
			Modifiers: []string{"PARACETAMOL"},
		})

		require.Equal(t, http.StatusOK, rec.Code)
		view := decode[report.View](t, rec)
		assert.Equal(t, "OG Kush", view.BaseItem)
		assert.Equal(t, []string{"Slippery", "Sneaky"}, view.Properties)
	})

	t.Run("Empty Sequence", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/v1/mix", MixRequest{BaseItem: "OG Kush"})

		require.Equal(t, http.StatusOK, rec.Code)
		view := decode[report.View](t, rec)
		assert.Equal(t, []string{"Calming"}, view.Properties)
		assert.Zero(t, view.Cost)
	})

	t.Run("Unknown Names", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/v1/mix", MixRequest{
			BaseItem:  "Unobtainium",
			Modifiers: []string{"Cuke", "Moon Dust"},
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decode[ErrorResponse](t, rec)
		assert.Equal(t, ErrMsgUnknownBaseItem, resp.Error)
		assert.Contains(t, resp.Detail, "Unobtainium")
		assert.Contains(t, resp.Detail, "Moon Dust")
	})

	t.Run("Missing Base Item", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/v1/mix", MixRequest{Modifiers: []string{"Cuke"}})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decode[ValidationErrorResponse](t, rec)
		assert.Equal(t, "This field is required", resp.Fields["baseitem"])
	})

	t.Run("Too Many Modifiers", func(t *testing.T) {
		mods := make([]string, MaxMixModifiers+1)
		for i := range mods {
			mods[i] = "Cuke"
		}
		rec := do(t, router, http.MethodPost, "/api/v1/mix", MixRequest{BaseItem: "OG Kush", Modifiers: mods})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgInvalidRequestSummary)
	})

	t.Run("Malformed Body", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/v1/mix", `{"base_item":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, ErrMsgInvalidRequest, decode[ErrorResponse](t, rec).Error)
	})

	t.Run("Unknown Field", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/v1/mix", `{"base_item":"OG Kush","sauce":"yes"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.True(t, strings.Contains(decode[ErrorResponse](t, rec).Detail, "sauce"))
	})
}
