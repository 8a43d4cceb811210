// backend.go: HTTP-реализация FileAPI.
// Операции: list (GET /files), get (GET /files/{id}), create (POST /files/upload),
// update (PUT /files/{id}), delete (DELETE /files/{id}), preview (/files/{id}/preview).
// Не-2xx ответы возвращаются как *RequestError, повторов нет.
package apiclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"

	"github.com/bigkaa/goartstore/content-dashboard/internal/domain/model"
)

// maxErrorBody: сколько байт тела ошибки читать для разбора.
const maxErrorBody = 64 << 10

// Backend: клиент Content API.
type Backend struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewBackend создаёт backend-клиент.
// caCertPath: путь к CA-сертификату (пусто: системный пул).
// timeout: таймаут HTTP-клиента (0: без таймаута).
func NewBackend(baseURL, caCertPath string, timeout time.Duration, logger *slog.Logger) (*Backend, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("некорректный base URL %q: %w", baseURL, err)
	}

	httpClient := &http.Client{Timeout: timeout}
	if caCertPath != "" {
		tlsConfig, err := buildTLSConfig(caCertPath)
		if err != nil {
			return nil, fmt.Errorf("загрузка CA-сертификата Content API: %w", err)
		}
		httpClient.Transport = &http.Transport{TLSClientConfig: tlsConfig}
		logger.Info("CA-сертификат Content API добавлен в пул доверия",
			slog.String("ca_cert", caCertPath),
		)
	}

	return &Backend{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger.With(slog.String("component", "content_api_client")),
	}, nil
}

// buildTLSConfig создаёт TLS-конфигурацию с кастомным CA.
func buildTLSConfig(caCertPath string) (*tls.Config, error) {
	caCert, err := os.ReadFile(caCertPath)
	if err != nil {
		return nil, fmt.Errorf("чтение CA-сертификата: %w", err)
	}

	caCertPool, err := x509.SystemCertPool()
	if err != nil {
		caCertPool = x509.NewCertPool()
	}
	caCertPool.AppendCertsFromPEM(caCert)

	return &tls.Config{RootCAs: caCertPool}, nil
}

// Mode возвращает ModeBackend.
func (c *Backend) Mode() Mode { return ModeBackend }

// ListFiles запрашивает GET /files?q=&status=. Пустые фильтры не передаются.
func (c *Backend) ListFiles(ctx context.Context, filter model.FileFilter) (*model.FileList, error) {
	params := url.Values{}
	if filter.Query != "" {
		params.Set("q", filter.Query)
	}
	if filter.Status != "" {
		params.Set("status", filter.Status)
	}
	reqURL := c.baseURL + "/files"
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var list model.FileList
	if err := c.doJSON(ctx, http.MethodGet, reqURL, nil, &list); err != nil {
		return nil, fmt.Errorf("listFiles: %w", err)
	}
	// null-элементы списка отбрасываются
	list.Items = slices.DeleteFunc(list.Items, func(f *model.File) bool { return f == nil })
	if list.Items == nil {
		list.Items = []*model.File{}
	}
	for _, f := range list.Items {
		f.Normalize()
	}
	return &list, nil
}

// GetFile запрашивает GET /files/{id}.
func (c *Backend) GetFile(ctx context.Context, id string) (*model.File, error) {
	reqURL, err := c.fileURL(id, "")
	if err != nil {
		return nil, err
	}

	var f model.File
	if err := c.doJSON(ctx, http.MethodGet, reqURL, nil, &f); err != nil {
		return nil, fmt.Errorf("getFile %s: %w", id, err)
	}
	f.Normalize()
	return &f, nil
}

// CreateUpload отправляет multipart POST /files/upload.
// Тело формируется потоково: файл не буферизуется в памяти.
func (c *Backend) CreateUpload(ctx context.Context, payload *model.UploadPayload) (*model.UploadResult, error) {
	if payload == nil || payload.File == nil {
		return nil, fmt.Errorf("%w: файл не передан", ErrValidation)
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeUploadForm(mw, payload))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/files/upload", pr)
	if err != nil {
		pr.Close()
		return nil, fmt.Errorf("создание запроса createUpload: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	var result model.UploadResult
	if err := c.send(req, &result); err != nil {
		return nil, fmt.Errorf("createUpload: %w", err)
	}

	c.logger.Info("Загрузка принята backend",
		slog.String("file_id", result.ID),
		slog.String("status", string(result.Status)),
	)
	return &result, nil
}

// writeUploadForm пишет поля multipart-формы и закрывает writer.
func writeUploadForm(mw *multipart.Writer, payload *model.UploadPayload) error {
	filename := payload.Filename
	if filename == "" {
		filename = "upload.ts"
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, payload.File); err != nil {
		return fmt.Errorf("копирование файла в форму: %w", err)
	}

	if err := mw.WriteField("title", payload.Title); err != nil {
		return err
	}
	if payload.Description != "" {
		if err := mw.WriteField("description", payload.Description); err != nil {
			return err
		}
	}
	if payload.Tags != "" {
		if err := mw.WriteField("tags", payload.Tags); err != nil {
			return err
		}
	}

	streams := BuildStreams(payload.Video, payload.Audios, payload.Subtitles)
	if len(streams) > 0 {
		data, err := json.Marshal(streams)
		if err != nil {
			return err
		}
		if err := mw.WriteField("streams", string(data)); err != nil {
			return err
		}
	}

	return mw.Close()
}

// updateRequest: тело PUT /files/{id}: только переданные поля.
type updateRequest struct {
	Title       *string           `json:"title,omitempty"`
	Description *string           `json:"description,omitempty"`
	Tags        *[]string         `json:"tags,omitempty"`
	Status      *model.FileStatus `json:"status,omitempty"`
	Streams     *[]Stream         `json:"streams,omitempty"`
}

// UpdateFile отправляет PUT /files/{id} с частичными метаданными.
// Дорожки передаются как streams, если патч их затрагивает.
func (c *Backend) UpdateFile(ctx context.Context, id string, patch model.FilePatch) (*model.File, error) {
	reqURL, err := c.fileURL(id, "")
	if err != nil {
		return nil, err
	}

	body := updateRequest{
		Title:       patch.Title,
		Description: patch.Description,
		Tags:        patch.Tags,
		Status:      patch.Status,
	}
	if patch.HasTracks() {
		streams, err := c.mergeStreams(ctx, id, patch)
		if err != nil {
			return nil, err
		}
		body.Streams = &streams
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("сериализация updateFile: %w", err)
	}

	var f model.File
	if err := c.doJSON(ctx, http.MethodPut, reqURL, data, &f); err != nil {
		return nil, fmt.Errorf("updateFile %s: %w", id, err)
	}
	f.Normalize()
	return &f, nil
}

// mergeStreams собирает полный массив streams для PUT.
// Backend заменяет streams целиком, поэтому группы дорожек, которых нет
// в патче, берутся из текущей записи.
func (c *Backend) mergeStreams(ctx context.Context, id string, patch model.FilePatch) ([]Stream, error) {
	video := patch.Video
	var audios []model.AudioTrack
	if patch.Audios != nil {
		audios = *patch.Audios
	}
	var subtitles []model.SubtitleTrack
	if patch.Subtitles != nil {
		subtitles = *patch.Subtitles
	}

	if patch.Video == nil || patch.Audios == nil || patch.Subtitles == nil {
		current, err := c.GetFile(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("updateFile %s: %w", id, err)
		}
		if patch.Video == nil {
			video = current.Video
		}
		if patch.Audios == nil {
			audios = current.Audios
		}
		if patch.Subtitles == nil {
			subtitles = current.Subtitles
		}
	}

	return BuildStreams(video, audios, subtitles), nil
}

// DeleteFile отправляет DELETE /files/{id}.
// 404 трактуется как «уже удалён»: (false, nil).
func (c *Backend) DeleteFile(ctx context.Context, id string) (bool, error) {
	reqURL, err := c.fileURL(id, "")
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, reqURL, nil)
	if err != nil {
		return false, fmt.Errorf("создание запроса deleteFile: %w", err)
	}

	if err := c.send(req, nil); err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusNotFound {
			c.logger.Debug("Удаление отсутствующего файла", slog.String("file_id", id))
			return false, nil
		}
		return false, fmt.Errorf("deleteFile %s: %w", id, err)
	}
	return true, nil
}

// PreviewURL возвращает {base}/files/{id}/preview.
func (c *Backend) PreviewURL(id string) string {
	u, err := c.fileURL(id, "/preview")
	if err != nil {
		c.logger.Warn("Не удалось построить preview URL",
			slog.String("file_id", id),
			slog.String("error", err.Error()),
		)
		return ""
	}
	return u
}

// fileURL строит {base}/files/{id}{suffix} с экранированием id по правилам path-параметров.
func (c *Backend) fileURL(id, suffix string) (string, error) {
	pathParam, err := runtime.StyleParamWithLocation("simple", false, "id", runtime.ParamLocationPath, id)
	if err != nil {
		return "", fmt.Errorf("%w: некорректный id %q: %v", ErrValidation, id, err)
	}
	return c.baseURL + "/files/" + pathParam + suffix, nil
}

// doJSON выполняет запрос с опциональным JSON-телом и декодирует JSON-ответ в out.
func (c *Backend) doJSON(ctx context.Context, method, reqURL string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("создание запроса %s: %w", method, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return c.send(req, out)
}

// send выполняет запрос. Не-2xx → *RequestError; при out != nil тело декодируется как JSON.
func (c *Backend) send(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("запрос %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Ответ Content API",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newRequestError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("декодирование ответа %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// newRequestError разбирает тело ошибки: JSON, если объявлен, иначе текст.
func newRequestError(resp *http.Response) *RequestError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	reqErr := &RequestError{StatusCode: resp.StatusCode}

	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var body any
		if err := json.Unmarshal(raw, &body); err == nil {
			reqErr.Body = body
			reqErr.Message = messageFromJSON(body)
		}
	}
	if reqErr.Body == nil {
		text := strings.TrimSpace(string(raw))
		reqErr.Body = text
		reqErr.Message = text
	}
	if reqErr.Message == "" {
		reqErr.Message = fmt.Sprintf("Request failed: %d", resp.StatusCode)
	}
	return reqErr
}

// messageFromJSON извлекает message (или строковый detail) из JSON-ошибки.
func messageFromJSON(body any) string {
	obj, ok := body.(map[string]any)
	if !ok {
		return ""
	}
	for _, key := range []string{"message", "detail"} {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	// Формат {"error": {"message": "..."}}
	if nested, ok := obj["error"].(map[string]any); ok {
		if s, ok := nested["message"].(string); ok {
			return s
		}
	}
	return ""
}
