package services

import (
	"bytes"
	"fmt"
	"html/template"

	"klage_registrering_go/models"

	"github.com/microcosm-cc/bluemonday"
)

// fritekstPolicy sanitizes caseworker-supplied rich text before it is placed
// in the letter HTML
var fritekstPolicy = bluemonday.UGCPolicy()

// SvarbrevPayload is everything the notification letter needs for rendering
type SvarbrevPayload struct {
	Title              string
	SakenGjelderName   string
	SakenGjelderID     string
	TypeName           string
	YtelseName         string
	BehandlingstidText string
	CustomText         template.HTML
	FullmektigFritekst string
}

var svarbrevTemplate = template.Must(template.New("svarbrev").Parse(`<!DOCTYPE html>
<html lang="nb">
<head>
<meta charset="utf-8">
<style>
  body { font-family: 'Source Sans Pro', Arial, sans-serif; font-size: 12pt; color: #262626; }
  h1 { font-size: 16pt; }
  .meta { margin-bottom: 2em; }
  .meta p { margin: 0.2em 0; }
  .fritekst { margin-top: 1.5em; }
</style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <div class="meta">
    <p>Saken gjelder: {{.SakenGjelderName}} ({{.SakenGjelderID}})</p>
    <p>Sakstype: {{.TypeName}}</p>
    <p>Ytelse: {{.YtelseName}}</p>
  </div>
  <p>Vi har mottatt saken og har startet behandlingen. Forventet behandlingstid er {{.BehandlingstidText}}.</p>
  {{if .CustomText}}<div class="fritekst">{{.CustomText}}</div>{{end}}
  {{if .FullmektigFritekst}}<p class="fritekst">{{.FullmektigFritekst}}</p>{{end}}
  <p>Med vennlig hilsen<br>Nav klageinstans</p>
</body>
</html>`))

// BuildSvarbrevHTML renders the notification letter HTML for a draft.
// Custom text is sanitized; everything else is escaped by the template.
func BuildSvarbrevHTML(r *models.Registrering, sakenGjelderName string) (string, error) {
	payload := SvarbrevPayload{
		Title:            r.SvarbrevTitle,
		SakenGjelderName: sakenGjelderName,
	}
	if payload.Title == "" {
		payload.Title = models.DefaultSvarbrevTitle
	}
	if subject := r.SakenGjelder(); subject != nil {
		payload.SakenGjelderID = subject.Value
	}
	if r.TypeID != nil {
		payload.TypeName = typeName(*r.TypeID)
	}
	if r.YtelseID != nil {
		if ytelse, ok := GetYtelse(*r.YtelseID); ok {
			payload.YtelseName = ytelse.Navn
		}
	}

	units := r.BehandlingstidUnits
	unitTypeID := r.BehandlingstidUnitTypeID
	if r.OverrideSvarbrevBehandlingstid && r.SvarbrevBehandlingstidUnits != nil && r.SvarbrevBehandlingstidUnitTypeID != nil {
		units = *r.SvarbrevBehandlingstidUnits
		unitTypeID = *r.SvarbrevBehandlingstidUnitTypeID
	}
	payload.BehandlingstidText = behandlingstidText(units, unitTypeID)

	if r.OverrideSvarbrevCustomText && r.SvarbrevCustomText != nil {
		sanitized := fritekstPolicy.Sanitize(*r.SvarbrevCustomText)
		payload.CustomText = template.HTML(sanitized)
	}
	if r.SvarbrevFullmektigFritekst != nil {
		payload.FullmektigFritekst = *r.SvarbrevFullmektigFritekst
	}

	var buf bytes.Buffer
	if err := svarbrevTemplate.Execute(&buf, payload); err != nil {
		return "", fmt.Errorf("failed to render svarbrev: %w", err)
	}
	return buf.String(), nil
}

// GenerateSvarbrevPDF renders the notification letter for a draft to PDF
func GenerateSvarbrevPDF(r *models.Registrering, sakenGjelderName string) ([]byte, error) {
	html, err := BuildSvarbrevHTML(r, sakenGjelderName)
	if err != nil {
		return nil, err
	}
	return GeneratePDF(html, DefaultPDFOptions())
}

func behandlingstidText(units int, unitTypeID string) string {
	switch unitTypeID {
	case models.BehandlingstidUnitWeeks:
		if units == 1 {
			return "1 uke"
		}
		return fmt.Sprintf("%d uker", units)
	case models.BehandlingstidUnitMonths:
		if units == 1 {
			return "1 måned"
		}
		return fmt.Sprintf("%d måneder", units)
	}
	return fmt.Sprintf("%d", units)
}

func typeName(typeID string) string {
	switch typeID {
	case models.TypeKlage:
		return "Klage"
	case models.TypeAnke:
		return "Anke"
	case models.TypeOmgjoeringskrav:
		return "Omgjøringskrav"
	}
	return typeID
}
