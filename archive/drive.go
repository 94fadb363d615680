package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"eliasstats/utils"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// DriveUploader uploads saved reports into one Google Drive folder. It
// authenticates with an installed-app client secret and a cached token file.
type DriveUploader struct {
	SecretFile string
	TokenFile  string
	FolderID   string

	tokenMu   sync.Mutex
	serviceMu sync.RWMutex
	service   *drive.Service
}

func NewDriveUploader(ctx context.Context, secretFile, tokenFile, folderID string) (*DriveUploader, error) {
	u := &DriveUploader{
		SecretFile: secretFile,
		TokenFile:  tokenFile,
		FolderID:   folderID,
	}
	if err := u.refreshService(ctx); err != nil {
		return nil, utils.ErrorWithTrace(err)
	}
	return u, nil
}

func (u *DriveUploader) Upload(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", utils.ErrorWithTrace(err)
	}
	defer file.Close()

	meta := &drive.File{
		Name:     fmt.Sprintf("%s_%s", time.Now().UTC().Format("20060102T150405"), filepath.Base(path)),
		MimeType: "text/plain",
		Parents:  []string{u.FolderID},
	}

	u.serviceMu.RLock()
	defer u.serviceMu.RUnlock()
	created, err := u.service.Files.Create(meta).
		Media(file, googleapi.ChunkSize(8*1024*1024)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", utils.ErrorWithTrace(err)
	}
	return created.Id, nil
}

// ServiceJanitor rebuilds the Drive service every interval so the token is
// refreshed before it goes stale. Returns when ctx is done.
func (u *DriveUploader) ServiceJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := u.refreshService(ctx); err != nil {
				slog.Error("failed to refresh drive service", "err", err)
			}
		}
	}
}

func (u *DriveUploader) refreshService(ctx context.Context) error {
	oauthConfig, err := u.oauthConfig()
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	token, err := u.token(ctx, oauthConfig)
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	service, err := drive.NewService(ctx, option.WithHTTPClient(oauthConfig.Client(ctx, token)))
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	u.serviceMu.Lock()
	u.service = service
	u.serviceMu.Unlock()
	return nil
}

func (u *DriveUploader) oauthConfig() (*oauth2.Config, error) {
	b, err := os.ReadFile(u.SecretFile)
	if err != nil {
		return nil, utils.ErrorWithTrace(err)
	}
	oauthConfig, err := google.ConfigFromJSON(b, drive.DriveFileScope)
	if err != nil {
		return nil, utils.ErrorWithTrace(err)
	}
	return oauthConfig, nil
}

// token loads the cached token, refreshing it through oauthConfig, and falls
// back to the interactive consent flow when there is no usable token.
func (u *DriveUploader) token(ctx context.Context, oauthConfig *oauth2.Config) (*oauth2.Token, error) {
	u.tokenMu.Lock()
	defer u.tokenMu.Unlock()

	token, err := tokenFromFile(u.TokenFile)
	if err != nil {
		token, err = tokenFromWeb(ctx, oauthConfig)
		if err != nil {
			return nil, utils.ErrorWithTrace(err)
		}
		return token, saveToken(u.TokenFile, token)
	}

	fresh, err := oauthConfig.TokenSource(ctx, token).Token()
	if err != nil {
		webToken, err2 := tokenFromWeb(ctx, oauthConfig)
		if err2 != nil {
			return nil, errors.Join(err, err2)
		}
		return webToken, saveToken(u.TokenFile, webToken)
	}
	if fresh.AccessToken != token.AccessToken {
		if err := saveToken(u.TokenFile, fresh); err != nil {
			return nil, utils.ErrorWithTrace(err)
		}
	}
	return fresh, nil
}

func tokenFromWeb(ctx context.Context, oauthConfig *oauth2.Config) (*oauth2.Token, error) {
	authURL := oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the "+
		"authorization code: \n%v\n", authURL)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, utils.ErrorWithTrace(fmt.Errorf("unable to read authorization code: %w", err))
	}
	tok, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, utils.ErrorWithTrace(fmt.Errorf("unable to retrieve token from web: %w", err))
	}
	return tok, nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, utils.ErrorWithTrace(err)
	}
	defer f.Close()

	t := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(t); err != nil {
		return nil, utils.ErrorWithTrace(err)
	}
	return t, nil
}

func saveToken(file string, token *oauth2.Token) error {
	slog.Info("saving oauth token", "file", file)
	f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return utils.ErrorWithTrace(fmt.Errorf("unable to cache oauth token: %w", err))
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(token); err != nil {
		return utils.ErrorWithTrace(err)
	}
	return nil
}
