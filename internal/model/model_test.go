package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssuance_JSON(t *testing.T) {
	t.Run("available book serializes a null issuance", func(t *testing.T) {
		data, err := json.Marshal(Book{ID: 1, Title: "Dune", Available: true})
		require.NoError(t, err)

		var got map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &got))
		require.Equal(t, "null", string(got["IssuedTo"]))
		require.Equal(t, "true", string(got["Book_Status"]))
	})

	t.Run("round trip keeps the issuance", func(t *testing.T) {
		iss := Issuance{
			Name:       "Paul",
			Email:      "paul@example.com",
			IssueDate:  time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
			ReturnDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			Valid:      true,
		}
		data, err := json.Marshal(Book{ID: 1, IssuedTo: iss})
		require.NoError(t, err)

		var back Book
		require.NoError(t, json.Unmarshal(data, &back))
		require.True(t, back.IssuedTo.Valid)
		require.Equal(t, iss, back.IssuedTo)
	})
}

func TestIssuance_Scan(t *testing.T) {
	t.Run("null column", func(t *testing.T) {
		var iss Issuance
		require.NoError(t, iss.Scan(nil))
		require.False(t, iss.Valid)
	})

	t.Run("jsonb bytes", func(t *testing.T) {
		var iss Issuance
		require.NoError(t, iss.Scan([]byte(`{"name":"Paul","email":"paul@example.com"}`)))
		require.True(t, iss.Valid)
		require.Equal(t, "Paul", iss.Name)
	})

	t.Run("value of an invalid issuance is nil", func(t *testing.T) {
		v, err := Issuance{}.Value()
		require.NoError(t, err)
		require.Nil(t, v)
	})
}
