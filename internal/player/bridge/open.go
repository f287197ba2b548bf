package bridge

import (
	"context"
	"runtime"

	"github.com/colonyops/hark/pkg/executil"
)

// OpenBrowser opens url with command, or with the platform default opener
// when command is empty.
func OpenBrowser(ctx context.Context, exec executil.Executor, command []string, url string) error {
	if len(command) == 0 {
		command = defaultOpener(runtime.GOOS)
	}

	args := append(append([]string{}, command[1:]...), url)
	_, err := exec.Run(ctx, command[0], args...)
	return err
}

func defaultOpener(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler"}
	default:
		return []string{"xdg-open"}
	}
}
