package diagnostics

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

// Sink collects operator-facing messages. Messages are HTML fragments, as
// the WordPress admin renders them.
type Sink interface {
	AddMessage(message string)
	Messages() []string
}

type logSink struct {
	mutex    sync.Mutex
	messages []string
}

// NewLogSink returns a Sink that also logs every message as plain text.
func NewLogSink() Sink {
	return &logSink{}
}

func (s *logSink) AddMessage(message string) {
	s.mutex.Lock()
	s.messages = append(s.messages, message)
	s.mutex.Unlock()

	log.Warnf("⚠️ %s", PlainText(message))
}

func (s *logSink) Messages() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return append([]string(nil), s.messages...)
}

var lineBreak = regexp.MustCompile(`(?i)<br\s*/?>`)

// PlainText renders an HTML message for a terminal: line breaks become
// newlines and link targets follow the link text in parentheses.
func PlainText(message string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(lineBreak.ReplaceAllString(message, "\n")))
	if err != nil {
		return message
	}

	doc.Find("a").Each(func(i int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok && href != "" {
			s.AppendHtml(fmt.Sprintf(" (%s)", html.EscapeString(href)))
		}
	})

	return strings.TrimSpace(doc.Text())
}
