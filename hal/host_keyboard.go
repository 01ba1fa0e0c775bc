//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) poll() {
	for _, r := range ebiten.AppendInputChars(nil) {
		k.emit(KeyEvent{Press: true, Rune: r})
	}

	for key, code := range map[ebiten.Key]KeyCode{
		ebiten.KeyEnter:  KeyEnter,
		ebiten.KeyEscape: KeyEscape,
		ebiten.KeyF1:     KeyF1,
	} {
		if inpututil.IsKeyJustPressed(key) {
			k.emit(KeyEvent{Code: code, Press: true})
		}
		if inpututil.IsKeyJustReleased(key) {
			k.emit(KeyEvent{Code: code, Press: false})
		}
	}
}

func (k *hostKeyboard) emit(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}
