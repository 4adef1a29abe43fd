package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"jsslice/internal/ast"
	"jsslice/internal/source"
)

// ASTNodeOutput: узел AST в JSON/YAML. Поля заполняются по виду узла.
type ASTNodeOutput struct {
	Type     string          `json:"type" yaml:"type"`
	Op       string          `json:"op,omitempty" yaml:"op,omitempty"`
	Name     string          `json:"name,omitempty" yaml:"name,omitempty"`
	Value    any             `json:"value,omitempty" yaml:"value,omitempty"`
	Raw      string          `json:"raw,omitempty" yaml:"raw,omitempty"`
	Span     SpanJSON        `json:"span" yaml:"span"`
	Children []ASTNodeOutput `json:"children,omitempty" yaml:"children,omitempty"`
}

// ProgramOutput: корень вывода.
type ProgramOutput struct {
	Type       string          `json:"type" yaml:"type"`
	Hashbang   string          `json:"hashbang,omitempty" yaml:"hashbang,omitempty"`
	Statements []ASTNodeOutput `json:"statements" yaml:"statements"`
}

func spanJSON(sp source.Span) SpanJSON { return SpanJSON{Start: sp.Start, End: sp.End} }

// BuildProgramOutput converts prog into the serialisable form.
func BuildProgramOutput(prog *ast.Program) ProgramOutput {
	out := ProgramOutput{Type: "Program", Hashbang: prog.Hashbang, Statements: make([]ASTNodeOutput, 0, prog.Len())}
	for _, id := range prog.Stmts {
		out.Statements = append(out.Statements, stmtOutput(prog.Builder, id))
	}
	return out
}

func stmtOutput(b *ast.Builder, id ast.StmtID) ASTNodeOutput {
	st := b.Stmts.Get(id)
	if st == nil {
		return ASTNodeOutput{Type: "<nil>"}
	}
	node := ASTNodeOutput{Span: spanJSON(st.Span)}
	switch st.Kind {
	case ast.StmtDirective:
		d, _ := b.Stmts.Directive(id)
		node.Type, node.Value, node.Raw = "Directive", b.Str(d.Value), b.Str(d.Raw)
	case ast.StmtLet:
		d, _ := b.Stmts.Let(id)
		node.Type, node.Name = "LetDeclaration", b.Str(d.Name)
		node.Children = []ASTNodeOutput{exprOutput(b, d.Init)}
	default:
		node.Type = "ExpressionStatement"
		node.Children = []ASTNodeOutput{exprOutput(b, b.Stmts.Root(id))}
	}
	return node
}

func exprOutput(b *ast.Builder, id ast.ExprID) ASTNodeOutput {
	e := b.Exprs.Get(id)
	if e == nil {
		return ASTNodeOutput{Type: "<nil>"}
	}
	node := ASTNodeOutput{Span: spanJSON(e.Span)}
	switch e.Kind {
	case ast.ExprNumber:
		d, _ := b.Exprs.Number(id)
		node.Type, node.Value, node.Raw = "NumberLiteral", d.Value, b.Str(d.Raw)
	case ast.ExprString:
		d, _ := b.Exprs.StringLit(id)
		node.Type, node.Value, node.Raw = "StringLiteral", b.Str(d.Value), b.Str(d.Raw)
	case ast.ExprIdent:
		d, _ := b.Exprs.Ident(id)
		node.Type, node.Name = "Identifier", b.Str(d.Name)
	case ast.ExprBinary:
		d, _ := b.Exprs.Binary(id)
		node.Type, node.Op = "Binary", d.Op.String()
	case ast.ExprAssign:
		node.Type = "Assignment"
	case ast.ExprParen:
		node.Type = "Parenthesized"
	case ast.ExprComma:
		node.Type = "Comma"
	}
	for _, child := range b.Exprs.Children(id) {
		node.Children = append(node.Children, exprOutput(b, child))
	}
	return node
}

// FormatASTJSON пишет программу как JSON с отступами.
func FormatASTJSON(w io.Writer, prog *ast.Program) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildProgramOutput(prog))
}

// FormatASTYAML пишет программу как YAML.
func FormatASTYAML(w io.Writer, prog *ast.Program) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(BuildProgramOutput(prog)); err != nil {
		return err
	}
	return enc.Close()
}

type treeNode struct {
	label    string
	children []*treeNode
}

// FormatASTTree рисует дерево:
//
//	test.js (span: 1:1-1:15)
//	└─ Let x (span: 1:1-1:15)
//	   └─ Binary + (span: 1:9-1:14)
func FormatASTTree(w io.Writer, prog *ast.Program, fs *source.FileSet) error {
	header := "Program"
	if fs != nil && int(prog.Span.File) < fs.Len() {
		header = fs.Get(prog.Span.File).FormatPath("auto", fs.BaseDir())
	}
	root := &treeNode{label: fmt.Sprintf("%s (span: %s)", header, formatSpan(prog.Span, fs))}
	if prog.Hashbang != "" {
		root.children = append(root.children, &treeNode{label: "Hashbang " + strconv.Quote(prog.Hashbang)})
	}
	for _, id := range prog.Stmts {
		root.children = append(root.children, stmtTree(prog.Builder, id, fs))
	}
	var sb strings.Builder
	sb.WriteString(root.label + "\n")
	writeTreeChildren(&sb, root.children, "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeTreeChildren(sb *strings.Builder, children []*treeNode, prefix string) {
	for i, child := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		sb.WriteString(prefix + branch + child.label + "\n")
		writeTreeChildren(sb, child.children, prefix+next)
	}
}

func stmtTree(b *ast.Builder, id ast.StmtID, fs *source.FileSet) *treeNode {
	st := b.Stmts.Get(id)
	if st == nil {
		return &treeNode{label: "<nil>"}
	}
	sp := formatSpan(st.Span, fs)
	switch st.Kind {
	case ast.StmtDirective:
		d, _ := b.Stmts.Directive(id)
		return &treeNode{label: fmt.Sprintf("Directive %s (span: %s)", b.Str(d.Raw), sp)}
	case ast.StmtLet:
		d, _ := b.Stmts.Let(id)
		return &treeNode{
			label:    fmt.Sprintf("Let %s (span: %s)", b.Str(d.Name), sp),
			children: []*treeNode{exprTree(b, d.Init, fs)},
		}
	default:
		return &treeNode{
			label:    fmt.Sprintf("ExprStmt (span: %s)", sp),
			children: []*treeNode{exprTree(b, b.Stmts.Root(id), fs)},
		}
	}
}

func exprTree(b *ast.Builder, id ast.ExprID, fs *source.FileSet) *treeNode {
	e := b.Exprs.Get(id)
	if e == nil {
		return &treeNode{label: "<nil>"}
	}
	var head string
	switch e.Kind {
	case ast.ExprNumber:
		d, _ := b.Exprs.Number(id)
		head = "Number " + b.Str(d.Raw)
	case ast.ExprString:
		d, _ := b.Exprs.StringLit(id)
		head = "String " + b.Str(d.Raw)
	case ast.ExprIdent:
		d, _ := b.Exprs.Ident(id)
		head = "Ident " + b.Str(d.Name)
	case ast.ExprBinary:
		d, _ := b.Exprs.Binary(id)
		head = "Binary " + d.Op.String()
	default:
		head = e.Kind.String()
	}
	node := &treeNode{label: fmt.Sprintf("%s (span: %s)", head, formatSpan(e.Span, fs))}
	for _, child := range b.Exprs.Children(id) {
		node.children = append(node.children, exprTree(b, child, fs))
	}
	return node
}

// formatSpan: "l:c-l:c" при наличии FileSet, иначе байтовые смещения.
func formatSpan(sp source.Span, fs *source.FileSet) string {
	if fs == nil || int(sp.File) >= fs.Len() {
		return sp.String()
	}
	start, end := fs.Resolve(sp)
	return fmt.Sprintf("%s-%s", start, end)
}
