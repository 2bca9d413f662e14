// Package tui renders the dictionary window in the terminal.
package tui

import (
	"context"
	"log/slog"

	"github.com/at-ishikawa/talkdict/internal/app"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	windowTitle = "TALKING DICTIONARY"

	mainPage   = "main"
	dialogPage = "dialog"

	inputLabel   = "Enter Word"
	displayLabel = "Meaning"

	searchButton       = "Search"
	speakWordButton    = "Speak Word"
	speakMeaningButton = "Speak Meaning"
	clearButton        = "Clear"
	exitButton         = "Exit"

	yesButton = "Yes"
	noButton  = "No"
	okButton  = "OK"

	inputWidth    = 34
	displayWidth  = 60
	displayHeight = 12
)

// Window implements app.View with tview widgets.
// Every method must be called from the tview event goroutine.
type Window struct {
	application *tview.Application
	pages       *tview.Pages
	form        *tview.Form
	input       *tview.InputField
	display     *tview.TextView
}

func NewWindow() *Window {
	input := tview.NewInputField().
		SetLabel(inputLabel).
		SetFieldWidth(inputWidth)
	display := tview.NewTextView().
		SetLabel(displayLabel).
		SetSize(displayHeight, displayWidth).
		SetWordWrap(true).
		SetScrollable(true)

	form := tview.NewForm().
		AddFormItem(input).
		AddFormItem(display).
		AddButton(searchButton, nil).
		AddButton(speakWordButton, nil).
		AddButton(speakMeaningButton, nil).
		AddButton(clearButton, nil).
		AddButton(exitButton, nil)
	form.SetBorder(true)

	title := tview.NewTextView().
		SetText(windowTitle).
		SetTextAlign(tview.AlignCenter).
		SetTextColor(tcell.ColorRed)

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(title, 1, 0, false).
		AddItem(form, 0, 1, true)

	pages := tview.NewPages().
		AddPage(mainPage, layout, true, true)

	return &Window{
		application: tview.NewApplication(),
		pages:       pages,
		form:        form,
		input:       input,
		display:     display,
	}
}

// Bind wires the buttons to the controller. Handlers run to completion on the event goroutine.
func (w *Window) Bind(ctx context.Context, controller *app.Controller) {
	w.onButton(searchButton, func() error { return controller.Search(ctx) })
	w.onButton(speakWordButton, func() error { return controller.SpeakWord(ctx) })
	w.onButton(speakMeaningButton, func() error { return controller.SpeakMeaning(ctx) })
	w.onButton(clearButton, func() error {
		controller.Clear()
		w.application.SetFocus(w.input)
		return nil
	})
	w.onButton(exitButton, func() error {
		controller.Exit()
		return nil
	})

	w.input.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			w.report(searchButton, controller.Search(ctx))
		}
	})
	w.form.SetCancelFunc(controller.Exit)
}

func (w *Window) onButton(label string, handler func() error) {
	w.form.GetButton(w.form.GetButtonIndex(label)).SetSelectedFunc(func() {
		w.report(label, handler())
	})
}

func (w *Window) report(action string, err error) {
	if err == nil {
		return
	}
	slog.Default().Error("action failed", "action", action, "error", err)
	w.Error(app.ErrorTitle, err.Error())
}

// Run blocks until Quit is called or the terminal fails.
func (w *Window) Run() error {
	return w.application.
		SetRoot(w.pages, true).
		SetFocus(w.input).
		Run()
}

func (w *Window) Input() string {
	return w.input.GetText()
}

func (w *Window) SetInput(text string) {
	w.input.SetText(text)
}

func (w *Window) Display() string {
	return w.display.GetText(false)
}

func (w *Window) SetDisplay(text string) {
	w.display.SetText(text).ScrollToBeginning()
}

// Confirm treats Escape as No.
func (w *Window) Confirm(title, message string, done func(yes bool)) {
	w.showDialog(title, message, []string{yesButton, noButton}, func(label string) {
		done(label == yesButton)
	})
}

func (w *Window) Info(title, message string) {
	w.showDialog(title, message, []string{okButton}, nil)
}

func (w *Window) Error(title, message string) {
	w.showDialog(title, message, []string{okButton}, nil)
}

func (w *Window) Quit() {
	w.application.Stop()
}

func (w *Window) showDialog(title, message string, buttons []string, done func(label string)) {
	slog.Default().Debug("dialog", "title", title, "message", message)
	modal := tview.NewModal().
		SetText(message).
		AddButtons(buttons).
		SetDoneFunc(func(_ int, label string) {
			w.pages.RemovePage(dialogPage)
			w.application.SetFocus(w.form)
			if done != nil {
				done(label)
			}
		})
	modal.SetTitle(" " + title + " ")

	w.pages.AddPage(dialogPage, modal, false, true)
	w.application.SetFocus(modal)
}
