// Command unveilshow is a scrollable image-gallery viewer: it loads a
// page, lays its lazy images out in a column, and fetches each one only
// as scrolling brings it near the window.
package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"unveil/pkg/html"
	stdnet "unveil/std/net"
)

const (
	windowWidth  = 800
	windowHeight = 600
	slotWidth    = 760
	slotHeight   = 400
)

func main() {
	a := app.New()
	w := a.NewWindow("unveil viewer")
	w.Resize(fyne.NewSize(windowWidth, windowHeight))

	status := widget.NewLabel("Enter a URL and press Enter")
	body := container.NewVBox()
	scroll := container.NewVScroll(body)

	var session *pageSession
	urlEntry := widget.NewEntry()
	urlEntry.SetPlaceHolder("https://example.com/gallery.html")
	urlEntry.OnSubmitted = func(url string) {
		status.SetText("Loading " + url + "...")
		go func() {
			pageBody, _, err := stdnet.Fetch(url)
			if err != nil {
				status.SetText("Error: " + err.Error())
				return
			}
			doc, err := html.Parse(string(pageBody))
			if err != nil {
				status.SetText("Parse error: " + err.Error())
				return
			}

			if session != nil {
				session.close()
			}
			session = newPageSession(url, doc, scroll, body, status)
			status.SetText(url)
		}()
	}

	top := container.NewBorder(nil, nil, nil, nil, urlEntry)
	w.SetContent(container.NewBorder(top, status, nil, nil, scroll))
	w.Canvas().Focus(urlEntry)
	w.ShowAndRun()
}
