package engine

// textElement handles the boundaries of paragraphs and divisions: a
// paragraph break at top level, a line break inside a container.
func (e *Engine) textElement() error {
	if e.inContainer() {
		e.runs.newLine()
		return nil
	}
	return e.flush()
}

// endParagraph ends a paragraph. At top level the paragraph is followed by
// the text bottom margin, inside a container by a blank line.
func (e *Engine) endParagraph() error {
	if e.inContainer() {
		e.runs.newLine()
		e.runs.lineBreak()
		return nil
	}
	e.applyMargin()
	run := e.runs.take(e.res.Text().InlineFormat)
	if run.IsEmpty() {
		return nil
	}
	if err := e.drawText(run, e.style()); err != nil {
		return err
	}
	e.put(e.res.Text().MarginBottom)
	return nil
}

func (e *Engine) startHeading(level int) error {
	if err := e.flush(); err != nil {
		return err
	}
	if !e.inContainer() {
		e.frame.MoveDown(e.res.Heading(level).MarginTop)
	}
	e.heading = level
	e.hdepth = len(e.stack)
	return nil
}

// endHeading sets the buffered text in the heading style. Inside a
// container the heading becomes a styled text node.
func (e *Engine) endHeading() error {
	if e.heading == 0 {
		return nil
	}
	h := e.res.Heading(e.heading)
	if err := e.flush(); err != nil {
		return err
	}
	e.heading = 0
	if !e.inContainer() {
		e.frame.MoveDown(h.MarginBottom)
	}
	return nil
}

// rule strokes a horizontal rule across the frame. Rules inside tables
// and lists are ignored.
func (e *Engine) rule() error {
	if e.inContainer() {
		return nil
	}
	e.margin = 0
	if err := e.flush(); err != nil {
		return err
	}
	const lineWidth = 1.0
	st := e.res.Text().Style
	ext := e.res.Metrics().Extents(st)
	e.frame.MoveDown(st.Size / 2)
	e.frame.Rule(lineWidth, st.Color)
	e.frame.MoveDown(st.Size/2 + ext.Descent + st.Leading - lineWidth)
	return nil
}
