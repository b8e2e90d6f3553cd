package textfit

// FailNextDraw makes the next draw on c fail as fpdf would.
func FailNextDraw(c *Canvas, msg string) {
	c.pdf.SetErrorf("%s", msg)
}
