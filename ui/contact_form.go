package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"portfolio/models"
)

// showContactForm shows the contact dialog; delivery is simulated locally
// and the message lands in the outbox
func (mw *MainWindow) showContactForm() {
	nameEntry := widget.NewEntry()
	emailEntry := widget.NewEntry()
	emailEntry.SetPlaceHolder("you@example.com")
	subjectEntry := widget.NewEntry()
	bodyEntry := widget.NewMultiLineEntry()
	bodyEntry.SetMinRowsVisible(6)

	form := dialog.NewForm("Contact", "Send", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Email", emailEntry),
			widget.NewFormItem("Subject", subjectEntry),
			widget.NewFormItem("Message", bodyEntry),
		},
		func(confirm bool) {
			if !confirm {
				return
			}

			msg := models.NewContactMessage(nameEntry.Text, emailEntry.Text, subjectEntry.Text, bodyEntry.Text)

			// Validate before the progress dialog so field errors come back
			// immediately
			if err := mw.contactMgr.Validate(msg); err != nil {
				dialog.ShowError(err, mw.window)
				return
			}

			progress := dialog.NewProgressInfinite("Sending", "Sending your message...", mw.window)
			progress.Show()

			go func() {
				defer progress.Hide()

				if err := mw.contactMgr.Submit(msg); err != nil {
					dialog.ShowError(fmt.Errorf("failed to send message: %w", err), mw.window)
					return
				}

				dialog.ShowInformation("Message Sent",
					fmt.Sprintf("Thanks %s, your message has been sent.", msg.Name), mw.window)
			}()
		},
		mw.window)

	form.Resize(fyne.NewSize(520, 420))
	form.Show()
}
