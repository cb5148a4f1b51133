package output

import (
	"encoding/xml"
	"fmt"
	"io"
)

type xmlContent struct {
	Text string `xml:",cdata"`
}

type xmlFile struct {
	XMLName xml.Name    `xml:"file"`
	Path    string      `xml:"path,attr"`
	Score   int         `xml:"score,attr"`
	Lines   int         `xml:"lines,attr"`
	Tokens  *int        `xml:"tokens,attr,omitempty"`
	Content *xmlContent `xml:"content,omitempty"`
}

type xmlCat struct {
	XMLName        xml.Name  `xml:"codebase"`
	Project        string    `xml:"project"`
	Session        string    `xml:"session,omitempty"`
	FilesShown     int       `xml:"files_shown"`
	SkippedBinary  int       `xml:"skipped_binary"`
	SkippedSession int       `xml:"skipped_session"`
	TotalLines     int       `xml:"total_lines"`
	Files          []xmlFile `xml:"files>file"`
}

type xmlTree struct {
	XMLName xml.Name  `xml:"codebase"`
	Project string    `xml:"project"`
	Files   []xmlFile `xml:"files>file"`
}

// WriteCatXML renders an emission payload as indented XML with file contents
// in CDATA sections.
func WriteCatXML(w io.Writer, payload CatPayload) error {
	doc := xmlCat{
		Project:        payload.Project,
		Session:        payload.Session,
		FilesShown:     payload.FilesShown,
		SkippedBinary:  payload.SkippedBinary,
		SkippedSession: payload.SkippedSession,
		TotalLines:     payload.TotalLines,
		Files:          xmlFiles(payload.Files, true),
	}
	return writeXML(w, doc)
}

// WriteTreeXML renders a structure payload as indented XML.
func WriteTreeXML(w io.Writer, payload TreePayload) error {
	doc := xmlTree{
		Project: payload.Project,
		Files:   xmlFiles(payload.Files, false),
	}
	return writeXML(w, doc)
}

func xmlFiles(files []FileOutput, withContent bool) []xmlFile {
	out := make([]xmlFile, 0, len(files))
	for _, f := range files {
		entry := xmlFile{Path: f.Path, Score: f.Score, Lines: f.Lines, Tokens: f.Tokens}
		if withContent {
			entry.Content = &xmlContent{Text: f.Content}
		}
		out = append(out, entry)
	}
	return out
}

func writeXML(w io.Writer, doc any) error {
	if _, err := fmt.Fprint(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
