// Package commands maps an inbound message to its reply text. Dispatch is
// a pure function; authorization is decided by the caller before it runs.
package commands

import (
	"fmt"
	"slices"
	"strings"
)

const (
	MenuReply = "Bem-vindo à Barbearia! 😎\n" +
		"Comandos disponíveis:\n" +
		"/agendar - Agendar um horário\n" +
		"/horarios - Ver horários disponíveis\n" +
		"/cancelar - Cancelar um agendamento"
	BookPromptReply   = "📅 Envie o horário desejado (ex: 14:00). Horários disponíveis: 9:00, 10:00, 11:00, 14:00, 15:00."
	SlotsReply        = "🕒 Horários disponíveis: 9:00, 10:00, 11:00, 14:00, 15:00."
	CancelReply       = "🗑️ Agendamento cancelado (funcionalidade de exemplo)."
	InvalidSlotReply  = "❌ Horário inválido. Use: 9:00, 10:00, 11:00, 14:00, 15:00."
	UnknownReply      = "🤔 Comando inválido. Digite /menu para ver os comandos."
	confirmedReplyFmt = "✅ Agendamento confirmado para %s!"
)

var validSlots = []string{"9:00", "10:00", "11:00", "14:00", "15:00"}

// Dispatch resolves text to a reply. Matching is case-insensitive; exact
// commands are checked before the argument form, so "/agendar " with a
// trailing space (empty argument) resolves to the invalid-slot reply.
func Dispatch(text string) string {
	msg := strings.ToLower(text)

	switch msg {
	case "/menu":
		return MenuReply
	case "/agendar":
		return BookPromptReply
	case "/horarios":
		return SlotsReply
	case "/cancelar":
		return CancelReply
	}

	if rest, ok := strings.CutPrefix(msg, "/agendar "); ok {
		slot, _, _ := strings.Cut(rest, " ")
		if slices.Contains(validSlots, slot) {
			return fmt.Sprintf(confirmedReplyFmt, slot)
		}
		return InvalidSlotReply
	}

	return UnknownReply
}
