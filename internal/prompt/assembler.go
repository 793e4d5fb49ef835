package prompt

import (
	"github.com/Vovarama1992/divinaci-bridge/internal/ai"
	"github.com/Vovarama1992/divinaci-bridge/internal/language"
)

// Directives is the assembled prompt for one request.
type Directives struct {
	// Code is the detected language, kept even when the catalog lacks a name.
	Code language.Code
	// Name is the display name used in the directive; "English" when unknown.
	Name     string
	Messages []ai.Message
}

// Assembler builds the directive prefix for a conversation. It is
// deterministic and makes no external calls.
type Assembler struct {
	Persona   string
	Checklist bool
	FewShots  bool
}

func NewAssembler() *Assembler {
	return &Assembler{Persona: Persona, Checklist: true, FewShots: true}
}

// Assemble returns [persona, language lock, few-shot pair?, conversation...].
// The conversation slice is copied, never modified.
func (a *Assembler) Assemble(code language.Code, conversation []ai.Message) Directives {
	name, ok := language.Name(code)
	if !ok {
		name = "English"
	}

	msgs := make([]ai.Message, 0, len(conversation)+4)
	msgs = append(msgs,
		ai.Message{Role: ai.RoleSystem, Content: a.Persona},
		ai.Message{Role: ai.RoleSystem, Content: LanguageLock(name, code, a.Checklist)},
	)

	if a.FewShots {
		if ex, ok := fewShots[code]; ok {
			msgs = append(msgs,
				ai.Message{Role: ai.RoleUser, Content: ex.User},
				ai.Message{Role: ai.RoleAssistant, Content: ex.Assistant},
			)
		}
	}

	msgs = append(msgs, conversation...)
	return Directives{Code: code, Name: name, Messages: msgs}
}
