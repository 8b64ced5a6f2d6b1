package lexer

import (
	"fmt"

	"fortio.org/safecast"
)

// Cursor представляет собой позицию в содержимом строки
type Cursor struct {
	Src string
	Off uint32
}

// NewCursor creates a new cursor over one line's content.
func NewCursor(src string) Cursor {
	if _, err := safecast.Conv[uint32](len(src)); err != nil {
		panic(fmt.Errorf("line content overflow: %w", err))
	}
	return Cursor{Src: src}
}

// EOF проверяет, достигнут ли конец строки
func (c *Cursor) EOF() bool {
	return int(c.Off) >= len(c.Src)
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Src[c.Off]
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Src[c.Off]
	c.Off++
	return b
}

// Mark это метка, чтобы быстро получать текст читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// TextFrom returns the text consumed since the mark.
func (c *Cursor) TextFrom(m Mark) string {
	return c.Src[m:c.Off]
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Src[c.Off] == b {
		c.Off++
		return true
	}
	return false
}
