package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/printmaania/printmaania-gobackend/internal/models"
)

// QuoteEmail renders the HTML body used by every quote lifecycle mail:
// title, quote id and contact block, itemized requirements (categories with
// no data are skipped), conditional status badges, the stage-specific
// message, and a fixed footer.
func QuoteEmail(title string, q *models.Quote, message string) string {
	var b strings.Builder

	b.WriteString(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;border:1px solid #e0e0e0;border-radius:8px">`)
	b.WriteString(`<div style="background:#1a237e;color:#ffffff;padding:16px;border-radius:8px 8px 0 0">`)
	fmt.Fprintf(&b, `<h2 style="margin:0">%s</h2>`, html.EscapeString(title))
	b.WriteString(`</div><div style="padding:16px">`)

	fmt.Fprintf(&b, `<p><strong>Quote ID:</strong> %s</p>`, q.ID.Hex())
	fmt.Fprintf(&b, `<p><strong>Name:</strong> %s<br><strong>Email:</strong> %s<br><strong>Mobile:</strong> %s<br><strong>Company:</strong> %s</p>`,
		html.EscapeString(q.Name), html.EscapeString(q.Email),
		html.EscapeString(q.Mobile), html.EscapeString(q.Company))
	if q.Description != "" {
		fmt.Fprintf(&b, `<p>%s</p>`, html.EscapeString(q.Description))
	}

	b.WriteString(`<h3 style="border-bottom:1px solid #e0e0e0;padding-bottom:4px">Requirements</h3>`)
	for _, category := range models.QuoteCategories {
		req, ok := q.Requirements[category]
		if !ok || req.Empty() {
			continue
		}
		fmt.Fprintf(&b, `<p><strong>%s</strong><br>`, html.EscapeString(category))
		if req.Size != "" {
			fmt.Fprintf(&b, `Size: %s<br>`, html.EscapeString(req.Size))
		}
		if req.Type != "" {
			fmt.Fprintf(&b, `Type: %s<br>`, html.EscapeString(req.Type))
		}
		if req.Quantity != "" {
			fmt.Fprintf(&b, `Quantity: %s<br>`, html.EscapeString(req.Quantity))
		}
		if req.Description != "" {
			fmt.Fprintf(&b, `Notes: %s<br>`, html.EscapeString(req.Description))
		}
		if req.Image != "" {
			fmt.Fprintf(&b, `<a href="%s">Reference image</a><br>`, html.EscapeString(req.Image))
		}
		b.WriteString(`</p>`)
	}

	badges := statusBadges(q)
	if len(badges) > 0 {
		b.WriteString(`<div style="margin:12px 0">`)
		for _, badge := range badges {
			b.WriteString(badge)
		}
		b.WriteString(`</div>`)
	}

	fmt.Fprintf(&b, `<p style="background:#f5f5f5;padding:12px;border-radius:4px">%s</p>`, html.EscapeString(message))

	b.WriteString(`</div><div style="background:#f5f5f5;padding:12px;border-radius:0 0 8px 8px;font-size:12px;color:#757575">`)
	b.WriteString(`PrintMaania &mdash; custom print products. This is an automated message, please do not reply.`)
	b.WriteString(`</div></div>`)

	return b.String()
}

func statusBadges(q *models.Quote) []string {
	var badges []string
	if q.Confirmed {
		badges = append(badges, badge("Confirmed", "#2e7d32"))
	}
	if q.TrackingID != "" {
		badges = append(badges, badge("Tracking: "+html.EscapeString(q.TrackingID), "#1565c0"))
	}
	if q.Delivered {
		badges = append(badges, badge("Delivered", "#4527a0"))
	}
	if q.Cancelled {
		badges = append(badges, badge("Cancelled", "#c62828"))
	}
	return badges
}

func badge(label, color string) string {
	return fmt.Sprintf(`<span style="display:inline-block;background:%s;color:#ffffff;padding:4px 10px;border-radius:12px;margin-right:6px;font-size:12px">%s</span>`, color, label)
}
