package client

import "github.com/atotto/clipboard"

type systemClipboard struct{}

// NewSystemClipboard returns a Clipboard backed by the desktop clipboard
// (pbcopy, xclip/xsel/wl-copy or the Windows API).
func NewSystemClipboard() Clipboard {
	return systemClipboard{}
}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
