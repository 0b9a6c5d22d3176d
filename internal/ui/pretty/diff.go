package pretty

// DiffStyler colours unified diff output. It satisfies fix.Styler.
type DiffStyler struct {
	styles *Styles
}

// NewDiffStyler wraps styles for diff rendering.
func NewDiffStyler(styles *Styles) DiffStyler {
	return DiffStyler{styles: styles}
}

func (d DiffStyler) Header(s string) string     { return d.styles.DiffHeader.Render(s) }
func (d DiffStyler) HunkHeader(s string) string { return d.styles.DiffHunk.Render(s) }
func (d DiffStyler) Added(s string) string      { return d.styles.DiffAdd.Render(s) }
func (d DiffStyler) Removed(s string) string    { return d.styles.DiffRemove.Render(s) }
