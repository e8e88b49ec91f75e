package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"

	"github.com/hostelites/hostelites-api/media"
	"github.com/hostelites/hostelites-api/models"
	"github.com/hostelites/hostelites-api/store"
)

const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: Georgia, serif; margin: 48px; color: #222; }
  .box { border: 2px solid #2c3e50; padding: 32px; }
  h1 { letter-spacing: 2px; }
  td { padding: 4px 16px 4px 0; }
</style>
</head>
<body>
<div class="box">
  <h1>HOSTELITES</h1>
  <h2>Booking Receipt</h2>
  <table>
    <tr><td>Reference</td><td><b>{{.Reference}}</b></td></tr>
    <tr><td>Hostel</td><td>{{.HostelName}}</td></tr>
    <tr><td>Room</td><td>{{.RoomName}}</td></tr>
    <tr><td>Nights</td><td>{{.Nights}}</td></tr>
    <tr><td>Price per day</td><td>{{.PricePerDay}}</td></tr>
    <tr><td>Paid at</td><td>{{.PaidAt}}</td></tr>
  </table>
</div>
</body>
</html>`

// ReceiptService renders a booking receipt in a headless browser, uploads it
// to the CDN, and attaches the URL to the booking. All of it is best-effort:
// failures are logged, never surfaced to the booking caller.
type ReceiptService struct {
	media    media.Gateway
	bookings store.BookingStore
}

func NewReceiptService(gateway media.Gateway, bookings store.BookingStore) *ReceiptService {
	return &ReceiptService{media: gateway, bookings: bookings}
}

func (s *ReceiptService) GenerateAndAttach(booking models.Booking, hostelName, roomName string) {
	html, err := renderReceiptHTML(booking, hostelName, roomName)
	if err != nil {
		log.Printf("🔥 Failed to render receipt HTML for booking %s: %v", booking.Reference, err)
		return
	}

	pdfBytes, err := renderPDFFromHTML(html)
	if err != nil {
		log.Printf("🔥 Failed to render receipt PDF for booking %s: %v", booking.Reference, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	publicID := fmt.Sprintf("%s_%s", booking.Reference, uuid.New().String())
	url, err := s.media.UploadRaw(ctx, pdfBytes, publicID)
	if err != nil {
		log.Printf("🔥 Failed to upload receipt for booking %s: %v", booking.Reference, err)
		return
	}

	if err := s.bookings.SetReceiptURL(ctx, booking.ID, url); err != nil {
		log.Printf("🔥 Failed to attach receipt URL to booking %s: %v", booking.Reference, err)
		return
	}
	log.Printf("✅ Generated receipt for booking %s.", booking.Reference)
}

func renderReceiptHTML(booking models.Booking, hostelName, roomName string) (string, error) {
	tmpl, err := template.New("receipt").Parse(receiptTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		Reference   string
		HostelName  string
		RoomName    string
		Nights      int
		PricePerDay string
		PaidAt      string
	}{
		Reference:   booking.Reference,
		HostelName:  hostelName,
		RoomName:    roomName,
		Nights:      len(booking.Dates),
		PricePerDay: fmt.Sprintf("%.2f", booking.TotalPricePerDay),
		PaidAt:      booking.PaidAt.Format("January 2, 2006"),
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func renderPDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}
