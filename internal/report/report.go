// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package report

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-otp-migrate/internal/migration"
	"github.com/MKhiriev/go-otp-migrate/internal/otpauth"
	"github.com/MKhiriev/go-otp-migrate/internal/service"
	"github.com/MKhiriev/go-otp-migrate/models"
)

type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	err    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:  r.NewStyle().Bold(true),
		header: r.NewStyle().Faint(true),
		err:    r.NewStyle().Bold(true),
	}
}

type printer struct {
	out *bufio.Writer
	st  styles
}

func newPrinter(w io.Writer) *printer {
	return &printer{out: bufio.NewWriter(w), st: newStyles(w)}
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
	p.out.WriteByte('\n')
}

// Render writes the dump report of entries to w.
//
// The report starts with the entry count. Each entry is then printed on a
// line prefixed with its index: the failing stage and error, or its content
// in the given mode. Credentials that could not be mapped are listed with a
// "!" marker and never hide the others.
func Render(w io.Writer, entries []service.Entry, mode Mode) error {
	p := newPrinter(w)

	p.line("%s", p.st.title.Render(fmt.Sprintf(MsgEntitiesFound, len(entries))))
	for _, entry := range entries {
		p.entry(entry, mode)
	}

	return p.out.Flush()
}

func (p *printer) entry(entry service.Entry, mode Mode) {
	if entry.Err != nil {
		p.line("%d : %s", entry.Index, p.st.err.Render(fmt.Sprintf("%s: %v", entry.Stage, entry.Err)))
		return
	}

	switch entry.Kind {
	case service.KindSingle:
		p.line("%d : %s", entry.Index, otpauth.Format(*entry.OTP))
		if mode == ModeDebug {
			p.line("%s%s", prefixDetail, detail(*entry.OTP))
		}

	case service.KindMigration:
		if mode == ModeURL {
			p.line("%d : %s", entry.Index, migration.EncodeURL(payloadsOf(entry)))
			return
		}
		p.line("%d : %s", entry.Index, migration.Scheme)
		for _, batch := range entry.Batches {
			p.batch(batch, mode)
		}
	}
}

func (p *printer) batch(batch service.Batch, mode Mode) {
	pl := batch.Payload
	p.line("%s%s", indent, p.st.header.Render(fmt.Sprintf(MsgBatchHeader, pl.Version, pl.BatchID, pl.BatchIndex, pl.BatchSize)))
	if len(batch.Credentials) == 0 {
		p.line("%s%s", indent, MsgNoCredentials)
	}

	for _, c := range batch.Credentials {
		switch {
		case c.Err != nil:
			p.line("%s%s", prefixFailure, p.st.err.Render(c.Err.Error()))
		case mode == ModeDebug:
			p.line("%s%s", prefixDetail, detail(c.OTP))
		default:
			p.line("%s%s", prefixCredential, otpauth.Format(c.OTP))
		}
	}
}

func detail(otp models.OTP) string {
	return fmt.Sprintf(MsgCredentialDetail, otp.AccountName(), otp.Issuer, otp.Algorithm, otp.Digits, otpauth.EncodeSecret(otp.Secret))
}

func payloadsOf(entry service.Entry) []models.MigrationPayload {
	payloads := make([]models.MigrationPayload, 0, len(entry.Batches))
	for _, b := range entry.Batches {
		payloads = append(payloads, b.Payload)
	}
	return payloads
}

// URLs returns the URLs a report in mode prints for the successful entries:
// one transfer URL per migration entry in url mode, otherwise one otpauth
// URL per mapped credential. Failed entries and credentials are skipped.
func URLs(entries []service.Entry, mode Mode) []string {
	var urls []string
	for _, entry := range entries {
		if entry.Err != nil {
			continue
		}

		switch entry.Kind {
		case service.KindSingle:
			urls = append(urls, otpauth.Format(*entry.OTP).String())
		case service.KindMigration:
			if mode == ModeURL {
				urls = append(urls, migration.EncodeURL(payloadsOf(entry)).String())
				continue
			}
			for _, batch := range entry.Batches {
				for _, c := range batch.Credentials {
					if c.Err == nil {
						urls = append(urls, otpauth.Format(c.OTP).String())
					}
				}
			}
		}
	}

	return urls
}

// RenderCodes writes one line per code: its entry index, the code, the
// seconds it stays valid and the credential label.
func RenderCodes(w io.Writer, codes []service.Code) error {
	p := newPrinter(w)

	for _, c := range codes {
		label := c.Account
		if c.Issuer != "" {
			label = c.Issuer + ":" + c.Account
		}

		if c.Err != nil {
			msg := c.Err.Error()
			if label != "" {
				msg = label + ": " + msg
			}
			p.line("%d : ! %s", c.Entry, p.st.err.Render(msg))
			continue
		}
		p.line("%d : "+MsgCodeLine, c.Entry, c.Code, int(c.Remaining.Round(time.Second)/time.Second), label)
	}

	return p.out.Flush()
}
