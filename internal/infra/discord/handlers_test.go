package discord

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"birthday_notification_bot/internal/domain/birthday"
)

func TestFormatBirthdayLine(t *testing.T) {
	today := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("regular entry", func(t *testing.T) {
		b := &birthday.Birthday{UserID: "user-1", Day: 20, Month: 6, Year: 1990}
		line := formatBirthdayLine("alice", b, today)

		assert.Contains(t, line, "🎂 **alice**")
		assert.Contains(t, line, "20/06/1990")
		assert.Contains(t, line, "5 dias")
	})

	t.Run("birthday today", func(t *testing.T) {
		b := &birthday.Birthday{UserID: "user-1", Day: 15, Month: 6, Year: 1990}
		line := formatBirthdayLine("bob", b, today)

		assert.Contains(t, line, "🎉 **bob**")
		assert.Contains(t, line, "Hoje!")
		assert.Contains(t, line, "34 anos")
	})

	t.Run("unknown username falls back to ID", func(t *testing.T) {
		b := &birthday.Birthday{UserID: "1234567890", Day: 1, Month: 1, Year: 2000}
		line := formatBirthdayLine("", b, today)

		assert.Contains(t, line, "Usuário 1234567890")
		assert.Contains(t, line, "01/01/2000")
	})
}

func TestSplitIntoFields(t *testing.T) {
	t.Run("single field for short lists", func(t *testing.T) {
		fields := splitIntoFields([]string{"line one", "line two"})
		require.Len(t, fields, 1)
		assert.Equal(t, "📋 Aniversariantes", fields[0].Name)
		assert.Equal(t, "line one\nline two", fields[0].Value)
	})

	t.Run("splits when exceeding field limit", func(t *testing.T) {
		long := strings.Repeat("x", 600)
		fields := splitIntoFields([]string{long, long, long})

		require.Len(t, fields, 3)
		assert.Equal(t, "📋 Aniversariantes", fields[0].Name)
		assert.Equal(t, "📋 Aniversariantes (continuação)", fields[1].Name)
		for _, f := range fields {
			assert.LessOrEqual(t, len(f.Value), maxFieldLength)
		}
	})

	t.Run("empty input yields no fields", func(t *testing.T) {
		assert.Empty(t, splitIntoFields(nil))
	})
}

func TestCommandDefinitions(t *testing.T) {
	defs := commandDefinitions()
	require.Len(t, defs, 7)

	names := make(map[string]bool, len(defs))
	for _, def := range defs {
		names[def.Name] = true
	}
	for _, want := range []string{
		"registrar_aniversario",
		"atualizar_aniversario",
		"ver_aniversario",
		"ver_lista_de_aniversarios",
		"canal_de_notificacoes",
		"mostrar_canal_de_notificacoes",
		"lista_comandos",
	} {
		assert.True(t, names[want], "missing command %s", want)
	}
}
