package ui

import (
	"context"
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/benmeehan/location-base/internal/models"
	"github.com/benmeehan/location-base/internal/services"
	"github.com/benmeehan/location-base/internal/utils"
	"github.com/rs/zerolog"
)

const captureLabel = "Capture location"

// MainView is the single screen of the app: title bar, dark mode switch, capture button and the
// list of recorded locations. Fields below the widgets line are touched on the UI goroutine only.
type MainView struct {
	ctx      context.Context
	app      fyne.App
	window   fyne.Window
	title    string
	recorder *services.LocationRecorder
	theme    *services.ThemeService
	pool     *utils.WorkerPool
	logger   zerolog.Logger

	content    fyne.CanvasObject
	darkSwitch *widget.Check
	button     *widget.Button
	activity   *widget.Activity
	list       *widget.List
	records    []models.LocationRecord
}

// NewMainView builds the screen and subscribes it to the recorder and theme services.
// Captures run on pool under ctx; cancelling ctx abandons any capture still waiting.
func NewMainView(ctx context.Context, app fyne.App, window fyne.Window, title string, recorder *services.LocationRecorder,
	themeService *services.ThemeService, pool *utils.WorkerPool, logger zerolog.Logger) *MainView {
	v := &MainView{
		ctx:      ctx,
		app:      app,
		window:   window,
		title:    title,
		recorder: recorder,
		theme:    themeService,
		pool:     pool,
		logger:   logger,
		records:  recorder.Locations(),
	}

	v.build()
	v.applyTheme(themeService.DarkMode())

	recorder.OnRecordsChanged(func(records []models.LocationRecord) {
		fyne.Do(func() { v.setRecords(records) })
	})
	recorder.OnBusyChanged(func(busy bool) {
		fyne.Do(func() { v.setBusy(busy) })
	})
	themeService.OnChange(func(dark bool) {
		fyne.Do(func() { v.applyTheme(dark) })
	})

	return v
}

// Content returns the root canvas object for the window.
func (v *MainView) Content() fyne.CanvasObject {
	return v.content
}

func (v *MainView) build() {
	header := widget.NewLabelWithStyle(v.title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	v.darkSwitch = widget.NewCheck("", v.onToggleDarkMode)
	v.darkSwitch.SetChecked(v.theme.DarkMode())
	darkRow := container.NewHBox(widget.NewLabel("Dark Mode"), layout.NewSpacer(), v.darkSwitch)

	v.activity = widget.NewActivity()
	v.activity.Hide()
	v.button = widget.NewButtonWithIcon(captureLabel, theme.NavigateNextIcon(), v.onCapture)
	v.button.Importance = widget.HighImportance
	buttonRow := container.NewBorder(nil, nil, nil, v.activity, v.button)

	v.list = widget.NewList(
		func() int { return len(v.records) },
		func() fyne.CanvasObject {
			title := widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
			return container.NewVBox(title, widget.NewLabel(""))
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			record := v.records[id]
			box := item.(*fyne.Container)
			box.Objects[0].(*widget.Label).SetText(record.Title())
			box.Objects[1].(*widget.Label).SetText(record.Description())
		},
	)

	top := container.NewVBox(header, widget.NewSeparator(), darkRow, buttonRow)
	v.content = container.NewBorder(top, nil, nil, nil, v.list)
}

func (v *MainView) onToggleDarkMode(checked bool) {
	if checked == v.theme.DarkMode() {
		return
	}
	if err := v.theme.SetDarkMode(checked); err != nil {
		v.logger.Error().Err(err).Msg("Dark mode change was not saved")
	}
}

func (v *MainView) onCapture() {
	go func() {
		err := v.pool.Submit(func() {
			_, err := v.recorder.CaptureLocation(v.ctx)
			if err == nil {
				return
			}
			if v.ctx.Err() != nil {
				v.logger.Debug().Err(err).Msg("Capture abandoned on shutdown")
				return
			}
			fyne.Do(func() { v.showCaptureError(err) })
		})
		if err != nil {
			v.logger.Warn().Err(err).Msg("Capture request dropped")
		}
	}()
}

func (v *MainView) showCaptureError(err error) {
	title, message := captureErrorMessage(err)
	if services.ErrorKind(err) == services.KindPermissionDenied {
		dialog.ShowInformation(title, message, v.window)
		return
	}
	dialog.ShowError(errors.New(message), v.window)
}

func (v *MainView) setRecords(records []models.LocationRecord) {
	v.records = records
	v.list.Refresh()
}

func (v *MainView) setBusy(busy bool) {
	if busy {
		v.activity.Start()
		v.activity.Show()
		return
	}
	v.activity.Stop()
	v.activity.Hide()
}

func (v *MainView) applyTheme(dark bool) {
	v.app.Settings().SetTheme(NewVariantTheme(dark))
	if v.darkSwitch.Checked != dark {
		v.darkSwitch.SetChecked(dark)
	}
}

// captureErrorMessage turns a capture failure into dialog text.
func captureErrorMessage(err error) (title, message string) {
	switch services.ErrorKind(err) {
	case services.KindPermissionDenied:
		return "Permission", "Permission denied to access location"
	case services.KindSensorFailure:
		return "Location unavailable", "Could not get the current location (" + err.Error() + ")"
	case services.KindStorageFailure:
		return "Storage error", "Could not save the location (" + err.Error() + ")"
	default:
		return "Error", err.Error()
	}
}
