package checkerspresenter

import (
	"strings"

	"github.com/park285/justcheckers-go/pkg/checkersdto"
)

// Presenter delivers formatted messages and board images without coupling to the command layer.
type Presenter struct {
	sendMessage func(target, message string) error
	sendImage   func(target string, png []byte) error
}

func NewPresenter(sendMessage func(target, message string) error, sendImage func(target string, png []byte) error) *Presenter {
	return &Presenter{
		sendMessage: sendMessage,
		sendImage:   sendImage,
	}
}

func (p *Presenter) Message(target, message string) error {
	if p == nil || p.sendMessage == nil || strings.TrimSpace(message) == "" {
		return nil
	}
	return p.sendMessage(target, message)
}

func (p *Presenter) Board(target, message string, state *checkersdto.SessionState) error {
	if p == nil {
		return nil
	}

	if err := p.Message(target, message); err != nil {
		return err
	}

	if state != nil && len(state.BoardImage) > 0 && p.sendImage != nil {
		if err := p.sendImage(target, state.BoardImage); err != nil {
			return err
		}
	}

	return nil
}
