package knowledge

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/unidoc/unioffice/document"
	pdfextractor "github.com/unidoc/unipdf/v3/extractor"
	pdfmodel "github.com/unidoc/unipdf/v3/model"
)

// FileParser 파일에서 본문 텍스트를 추출하는 인터페이스
type FileParser interface {
	Parse(reader io.Reader, filename string) (string, error)
	Supports(filename string) bool
}

// TextParser 일반 텍스트 파일
type TextParser struct{}

func (p *TextParser) Supports(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".txt" || ext == ".md"
}

func (p *TextParser) Parse(reader io.Reader, filename string) (string, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}
	return string(content), nil
}

// HWPXParser 한글 HWPX 문서. HWPX는 OPC 규격의 zip 묶음이고 본문은
// Contents/section*.xml 안의 <hp:t> 텍스트 노드에 들어 있다.
type HWPXParser struct{}

func (p *HWPXParser) Supports(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".hwpx"
}

func (p *HWPXParser) Parse(reader io.Reader, filename string) (string, error) {
	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read hwpx file: %w", err)
	}

	archive, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("open hwpx archive: %w", err)
	}

	var builder strings.Builder
	sections := 0
	for _, entry := range archive.File {
		if !isSectionXML(entry.Name) {
			continue
		}
		sections++
		if err := extractSectionText(entry, &builder); err != nil {
			return "", fmt.Errorf("parse %s: %w", entry.Name, err)
		}
	}
	if sections == 0 {
		return "", fmt.Errorf("no Contents/section*.xml in %s", filename)
	}
	return builder.String(), nil
}

// isSectionXML 본문 섹션 파일 여부 (Contents/section0.xml, section1.xml, ...)
func isSectionXML(name string) bool {
	return strings.HasPrefix(name, "Contents/section") && strings.HasSuffix(name, ".xml")
}

// extractSectionText 섹션 XML을 토큰 단위로 걸으며 <t> 노드의 텍스트를 모은다.
// 문단(</p>)이 닫힐 때 개행을 넣어 문단 경계를 보존한다. 표의 셀 내용도
// 셀 안의 문단을 통해 같은 방식으로 수집된다.
func extractSectionText(entry *zip.File, builder *strings.Builder) error {
	file, err := entry.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := xml.NewDecoder(file)
	inText := false
	wroteInParagraph := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if wroteInParagraph {
					builder.WriteString("\n")
					wroteInParagraph = false
				}
			}
		case xml.CharData:
			if inText {
				text := strings.TrimSpace(string(t))
				if text != "" {
					builder.WriteString(text)
					wroteInParagraph = true
				}
			}
		}
	}
}

// PDFParser PDF 문서 (사전 변환본 대응)
type PDFParser struct{}

func (p *PDFParser) Supports(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".pdf"
}

func (p *PDFParser) Parse(reader io.Reader, filename string) (string, error) {
	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read pdf file: %w", err)
	}

	pdfReader, err := pdfmodel.NewPdfReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return "", fmt.Errorf("pdf page count: %w", err)
	}

	var builder strings.Builder
	for i := 1; i <= numPages; i++ {
		page, err := pdfReader.GetPage(i)
		if err != nil {
			continue
		}
		ex, err := pdfextractor.New(page)
		if err != nil {
			continue
		}
		text, err := ex.ExtractText()
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// WordParser Word(.docx) 문서
type WordParser struct{}

func (p *WordParser) Supports(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".docx"
}

func (p *WordParser) Parse(reader io.Reader, filename string) (string, error) {
	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read docx file: %w", err)
	}

	doc, err := document.Read(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer doc.Close()

	var builder strings.Builder
	for _, para := range doc.Paragraphs() {
		for _, run := range para.Runs() {
			builder.WriteString(run.Text())
		}
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// ParserManager 확장자에 맞는 파서 선택
type ParserManager struct {
	parsers []FileParser
}

// NewParserManager 기본 파서 집합으로 매니저 생성
func NewParserManager() *ParserManager {
	return &ParserManager{
		parsers: []FileParser{
			&HWPXParser{},
			&PDFParser{},
			&WordParser{},
			&TextParser{},
		},
	}
}

// Supports 추출 가능한 형식인지 여부
func (m *ParserManager) Supports(filename string) bool {
	for _, parser := range m.parsers {
		if parser.Supports(filename) {
			return true
		}
	}
	return false
}

// Parse 파일 본문 텍스트 추출
func (m *ParserManager) Parse(reader io.Reader, filename string) (string, error) {
	for _, parser := range m.parsers {
		if parser.Supports(filename) {
			return parser.Parse(reader, filename)
		}
	}
	return "", fmt.Errorf("unsupported file format: %s", filename)
}
