package view

// ShiftFormFooter renders the footer for the shift form.
func ShiftFormFooter(editing bool, styles ModalStyles) string {
	if editing {
		return RenderModalButtons(styles, "[Enter] Save", "[Tab] Field", "[Esc] Cancel")
	}
	return RenderModalButtons(styles, "[Enter] Create", "[Tab] Field", "[Esc] Cancel")
}

// ConfirmDeleteFooter renders the footer for the delete confirmation.
func ConfirmDeleteFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, "[y/Enter] Delete", "[n/Esc] Cancel")
}

// HistoryFooter renders the footer for the history panel.
func HistoryFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, "[y] Copy", "[u] Undo", "[j/k] Scroll", "[Esc] Close")
}

// DirectoryFooter renders the footer for the directory panel.
func DirectoryFooter(editing, confirming bool, styles ModalStyles) string {
	switch {
	case editing:
		return RenderModalButtons(styles, "[Enter] Save", "[Tab] Field", "[Esc] Cancel")
	case confirming:
		return RenderModalButtons(styles, "[y] Remove", "[n/Esc] Keep")
	default:
		return RenderModalButtons(styles, "[a] Add", "[e] Edit", "[d] Remove", "[Tab] Switch", "[w] Write config", "[Esc] Close")
	}
}
