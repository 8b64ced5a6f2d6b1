package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

var listingSeeds = []string{
	"",
	"10 PRINT \"HELLO\"\n20 GOTO 10\n",
	"10 FOR I=1 TO 10:PRINT I:NEXT I\n20 END\n",
	"10 IF A=1 THEN 30\n20 GOSUB 100\n30 END\n100 RETURN\n",
	"10 ON X GOTO 20,30,\n20 REM \"unterminated\n30 DATA 1,\"A\",3\n",
	"10 A$=LEFT$(\"ABC\",2)+CHR$(65)\n20 PRINT A$;SQR(2)*(3+4\n",
	"20 PRINT\n10 PRINT\n10 END\n99999 STOP\n",
	"?\"A\":PRINT#1,\"B\"\r\n\r\n",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range listingSeeds {
		f.Add([]byte(s))
	}
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "check", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// добавляем все *.bas листинги из testdata
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".bas" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
