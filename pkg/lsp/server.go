// Package lsp serves the import rules to editors over the Language Server
// Protocol: diagnostics on open and change, quick fixes, organize imports and
// document formatting.
package lsp

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"github.com/siyuan-infoblox/pretty-import/pkg/config"
	"github.com/siyuan-infoblox/pretty-import/pkg/errors"
	"github.com/siyuan-infoblox/pretty-import/pkg/lint"

	_ "github.com/tliron/commonlog/simple"
)

const lspName = "pim"

var log = commonlog.GetLogger("pim.lsp")

// Options configure the server
type Options struct {
	ConfigFile string           // explicit config file, disables discovery
	Overrides  config.Overrides // applied on top of every resolved config
	Version    string
}

// Server bridges editor requests to the linter
type Server struct {
	options Options

	mu   sync.Mutex
	docs map[protocol.DocumentUri]string // URI → full document content

	handler protocol.Handler
	server  *glspserver.Server
}

// New creates a language server
func New(options Options) *Server {
	s := &Server{
		options: options,
		docs:    make(map[protocol.DocumentUri]string),
	}

	s.handler = protocol.Handler{
		Initialize:  s.initialize,
		Initialized: s.initialized,
		Shutdown:    s.shutdown,
		SetTrace:    s.setTrace,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,

		TextDocumentCodeAction: s.textDocumentCodeAction,
		TextDocumentFormatting: s.textDocumentFormatting,
	}

	s.server = glspserver.NewServer(&s.handler, lspName, false)
	return s
}

// Run starts the server on stdio. Blocks until the client disconnects.
func (s *Server) Run() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Infof("initializing %s %s", lspName, s.options.Version)

	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
	}
	capabilities.CodeActionProvider = &protocol.CodeActionOptions{
		CodeActionKinds: []protocol.CodeActionKind{
			protocol.CodeActionKindQuickFix,
			protocol.CodeActionKindSourceOrganizeImports,
		},
	}
	capabilities.DocumentFormattingProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lspName,
			Version: &s.options.Version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	log.Info("shutting down")
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	text := params.TextDocument.Text

	s.setDocument(uri, text)
	s.publishDiagnostics(ctx, uri, text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI

	// With Full sync, the last change event contains the full text
	if len(params.ContentChanges) > 0 {
		last := params.ContentChanges[len(params.ContentChanges)-1]
		if whole, ok := last.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.setDocument(uri, whole.Text)
			s.publishDiagnostics(ctx, uri, whole.Text)
		}
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI

	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()

	// Clear diagnostics for the closed document
	go ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *Server) textDocumentCodeAction(ctx *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return s.codeActions(params.TextDocument.URI, text, params.Range, params.Context.Only)
}

func (s *Server) textDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return s.format(params.TextDocument.URI, text)
}

func (s *Server) setDocument(uri protocol.DocumentUri, text string) {
	s.mu.Lock()
	s.docs[uri] = text
	s.mu.Unlock()
}

func (s *Server) document(uri protocol.DocumentUri) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.docs[uri]
	return text, ok
}

func (s *Server) publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	diagnostics, err := s.diagnostics(uri, text)
	if err != nil {
		log.Debugf("%s: %s", uri, err)
		severity := protocol.DiagnosticSeverityError
		source := lspName
		diagnostics = []protocol.Diagnostic{{
			Severity: &severity,
			Source:   &source,
			Message:  err.Error(),
		}}
	}

	go ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// configFor resolves the configuration of the file behind uri
func (s *Server) configFor(uri protocol.DocumentUri) (config.Config, error) {
	path, err := uriToPath(uri)
	if err != nil {
		log.Debugf("%s, using command line configuration", err)
		if s.options.ConfigFile == "" {
			return config.Resolve(s.options.Overrides)
		}
		return config.ForFile("", s.options.ConfigFile, s.options.Overrides)
	}
	return config.ForFile(path, s.options.ConfigFile, s.options.Overrides)
}

func (s *Server) analyze(uri protocol.DocumentUri, text string) ([]lint.Violation, config.Config, error) {
	cfg, err := s.configFor(uri)
	if err != nil {
		return nil, cfg, err
	}
	violations, err := lint.Analyze(text, cfg)
	return violations, cfg, err
}

// diagnostics returns one diagnostic per violation
func (s *Server) diagnostics(uri protocol.DocumentUri, text string) ([]protocol.Diagnostic, error) {
	violations, _, err := s.analyze(uri, text)
	if err != nil {
		return nil, err
	}

	doc := newDocument(text)
	diagnostics := make([]protocol.Diagnostic, 0, len(violations))
	for _, v := range violations {
		diagnostics = append(diagnostics, toDiagnostic(doc, v))
	}
	return diagnostics, nil
}

func toDiagnostic(doc *document, v lint.Violation) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityWarning
	if v.Severity == config.SeverityError {
		severity = protocol.DiagnosticSeverityError
	}
	source := lspName
	return protocol.Diagnostic{
		Range:    doc.rangeOf(v.Start, v.End),
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: string(v.ID)},
		Source:   &source,
		Message:  v.Message(),
	}
}

// codeActions returns a quick fix for every fixable violation within rng and
// an organize imports action applying all fixes
func (s *Server) codeActions(uri protocol.DocumentUri, text string, rng protocol.Range, only []protocol.CodeActionKind) ([]protocol.CodeAction, error) {
	violations, cfg, err := s.analyze(uri, text)
	if err != nil {
		return nil, err
	}

	doc := newDocument(text)
	start, end := doc.offset(rng.Start), doc.offset(rng.End)
	var actions []protocol.CodeAction

	if wants(only, protocol.CodeActionKindQuickFix) {
		kind := protocol.CodeActionKindQuickFix
		for _, v := range violations {
			if v.Fix == nil || v.End < start || v.Start > end {
				continue
			}
			actions = append(actions, protocol.CodeAction{
				Title:       "Fix: " + v.Message(),
				Kind:        &kind,
				Diagnostics: []protocol.Diagnostic{toDiagnostic(doc, v)},
				IsPreferred: boolPtr(true),
				Edit: &protocol.WorkspaceEdit{
					Changes: map[protocol.DocumentUri][]protocol.TextEdit{
						uri: {{Range: doc.rangeOf(v.Fix.Start, v.Fix.End), NewText: v.Fix.Text}},
					},
				},
			})
		}
	}

	if wants(only, protocol.CodeActionKindSourceOrganizeImports) && len(violations) > 0 {
		fixed, err := lint.Fix(text, cfg)
		if err != nil {
			return nil, err
		}
		if fixed != text {
			kind := protocol.CodeActionKindSourceOrganizeImports
			actions = append(actions, protocol.CodeAction{
				Title: "Organize imports",
				Kind:  &kind,
				Edit: &protocol.WorkspaceEdit{
					Changes: map[protocol.DocumentUri][]protocol.TextEdit{uri: wholeDocumentEdit(doc, fixed)},
				},
			})
		}
	}
	return actions, nil
}

// format returns the edit that replaces the document with its fixed text
func (s *Server) format(uri protocol.DocumentUri, text string) ([]protocol.TextEdit, error) {
	cfg, err := s.configFor(uri)
	if err != nil {
		return nil, err
	}
	fixed, err := lint.Fix(text, cfg)
	if err != nil {
		return nil, err
	}
	if fixed == text {
		return []protocol.TextEdit{}, nil
	}
	return wholeDocumentEdit(newDocument(text), fixed), nil
}

func wholeDocumentEdit(doc *document, text string) []protocol.TextEdit {
	return []protocol.TextEdit{{Range: doc.rangeOf(0, len(doc.text)), NewText: text}}
}

// wants reports whether kind passes the client's filter. An empty filter
// accepts every kind; a filter entry also accepts its sub-kinds.
func wants(only []protocol.CodeActionKind, kind protocol.CodeActionKind) bool {
	if len(only) == 0 {
		return true
	}
	for _, k := range only {
		if k == kind || strings.HasPrefix(string(kind), string(k)+".") {
			return true
		}
	}
	return false
}

func uriToPath(uri protocol.DocumentUri) (string, error) {
	u, err := url.Parse(string(uri))
	if err != nil {
		return "", err
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf(errors.ErrMsgUnknownURI, uri)
	}
	return filepath.FromSlash(u.Path), nil
}

func boolPtr(b bool) *bool {
	return &b
}
