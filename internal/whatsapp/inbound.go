package whatsapp

import (
	"net/http"
	"strings"

	"github.com/fekusatech/inoutcome-wa/internal/bot"
)

// The gateway posts x-www-form-urlencoded fields per message:
// From=<chat id>  Author=<participant id>  Body=<text>  ProfileName=<name>.
// Group chat ids carry the @g.us suffix. The reply travels back as TwiML.
func InboundHandler(h *bot.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}

		chatID := normalizeFrom(r.FormValue("From"))
		msg := bot.Message{
			GroupID:    chatID,
			AuthorID:   normalizeFrom(r.FormValue("Author")),
			AuthorName: strings.TrimSpace(r.FormValue("ProfileName")),
			Body:       r.FormValue("Body"),
			IsGroup:    strings.HasSuffix(chatID, "@g.us"),
		}
		if msg.AuthorName == "" {
			msg.AuthorName = msg.AuthorID
		}

		reply, ok := h.Handle(r.Context(), msg)
		if !ok {
			// no reply; acknowledge with an empty response
			writeTwiML(w, "")
			return
		}
		writeTwiML(w, reply)
	}
}

func normalizeFrom(from string) string {
	from = strings.TrimSpace(from)
	from = strings.TrimPrefix(from, "whatsapp:")
	return strings.TrimSpace(from)
}

func writeTwiML(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	body := `<?xml version="1.0" encoding="UTF-8"?>` + "\n<Response>"
	if msg != "" {
		body += "<Message>" + escapeXML(msg) + "</Message>"
	}
	body += "</Response>"
	_, _ = w.Write([]byte(body))
}

func escapeXML(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(s)
}
