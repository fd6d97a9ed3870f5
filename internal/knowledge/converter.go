package knowledge

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/hibot/backend-go/internal/errors"
)

// DocumentConverter 파서가 직접 읽지 못하는 형식(.hwp)을 읽을 수 있는
// 형식으로 변환한다. 변환 명령은 외부 도구에 위임하고 {input}/{output}
// 자리표시자를 실제 경로로 치환한다.
type DocumentConverter struct {
	convertCommand []string
	convertDir     string
	parsers        *ParserManager
	logger         *zap.Logger
}

// NewDocumentConverter creates a converter. convertCommand may be empty,
// in which case .hwp files cannot be processed.
func NewDocumentConverter(convertCommand []string, convertDir string, parsers *ParserManager, logger *zap.Logger) *DocumentConverter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentConverter{
		convertCommand: convertCommand,
		convertDir:     convertDir,
		parsers:        parsers,
		logger:         logger,
	}
}

// NeedsConversion 파서가 직접 못 읽는 형식인지
func (c *DocumentConverter) NeedsConversion(path string) bool {
	return !c.parsers.Supports(filepath.Base(path)) && strings.ToLower(filepath.Ext(path)) == ".hwp"
}

// Convert 필요 시 파일을 변환하고 파싱 가능한 파일의 경로를 돌려준다.
// 이미 파싱 가능한 형식이면 입력 경로를 그대로 반환한다.
func (c *DocumentConverter) Convert(ctx context.Context, path string) (string, error) {
	if !c.NeedsConversion(path) {
		return path, nil
	}

	if len(c.convertCommand) == 0 {
		return "", apperrors.NewExternalError(
			apperrors.ErrCodeConversionFailed,
			fmt.Sprintf("hwp 변환 도구가 설정되지 않았습니다: %s", filepath.Base(path)))
	}

	if c.convertDir != "" {
		if err := os.MkdirAll(c.convertDir, 0o755); err != nil {
			return "", apperrors.NewExternalError(apperrors.ErrCodeConversionFailed, "변환 디렉터리 생성 실패").WithCause(err)
		}
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	output := filepath.Join(c.convertDir, base+".hwpx")

	args := make([]string, 0, len(c.convertCommand))
	for _, arg := range c.convertCommand {
		arg = strings.ReplaceAll(arg, "{input}", path)
		arg = strings.ReplaceAll(arg, "{output}", output)
		args = append(args, arg)
	}

	c.logger.Info("converting document",
		zap.String("input", path),
		zap.String("output", output))

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if combined, err := cmd.CombinedOutput(); err != nil {
		c.logger.Error("document conversion failed",
			zap.String("input", path),
			zap.ByteString("output", combined),
			zap.Error(err))
		return "", apperrors.NewExternalError(
			apperrors.ErrCodeConversionFailed,
			fmt.Sprintf("문서 변환 실패: %s", filepath.Base(path))).WithCause(err)
	}

	if _, err := os.Stat(output); err != nil {
		return "", apperrors.NewExternalError(
			apperrors.ErrCodeConversionFailed,
			fmt.Sprintf("변환 결과 파일이 없습니다: %s", filepath.Base(output))).WithCause(err)
	}
	return output, nil
}
