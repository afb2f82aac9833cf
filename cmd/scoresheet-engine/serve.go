package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/pdiddy/scoresheet-engine/internal/secrets"
	"github.com/pdiddy/scoresheet-engine/internal/server"
	"github.com/pdiddy/scoresheet-engine/internal/tabular"
	"github.com/pdiddy/scoresheet-engine/internal/upload"
	"github.com/pdiddy/scoresheet-engine/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the conversion pipeline as an HTTP service",
	Long: `Serve exposes the conversion pipeline over HTTP. POST a PDF (multipart
"file" field) or a "url" form value to /convert and receive a JSON body with
one URL per produced artifact.

Artifacts are uploaded to S3 when --bucket is set; otherwise they are written
under --artifact-dir and self-hosted at /artifacts/.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().String("artifact-dir", "artifacts", "directory self-hosted artifacts are stored in")
	serveCmd.Flags().String("base-url", "", "externally visible base URL (default: http://localhost<addr>)")
	serveCmd.Flags().String("work-dir", os.TempDir(), "directory incoming PDFs are staged in")
	serveCmd.Flags().String("bucket", "", "S3 bucket to upload artifacts to (empty: self-host)")
	serveCmd.Flags().String("prefix", "", "object key prefix for uploaded artifacts")
	serveCmd.Flags().String("endpoint", "", "S3 endpoint override for S3-compatible stores (secret: s3-endpoint)")
	serveCmd.Flags().String("auth-token", "", "require this bearer token on requests (secret: service-token)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	artifactDir, _ := cmd.Flags().GetString("artifact-dir")
	baseURL, _ := cmd.Flags().GetString("base-url")
	workDir, _ := cmd.Flags().GetString("work-dir")
	bucket, _ := cmd.Flags().GetString("bucket")
	prefix, _ := cmd.Flags().GetString("prefix")
	endpoint, _ := cmd.Flags().GetString("endpoint")
	authToken, _ := cmd.Flags().GetString("auth-token")

	if baseURL == "" {
		host := addr
		if strings.HasPrefix(host, ":") {
			host = "localhost" + host
		}
		baseURL = "http://" + host
	}

	cfg := types.ServerConfig{
		Addr:        addr,
		ArtifactDir: artifactDir,
		BaseURL:     strings.TrimRight(baseURL, "/"),
		AuthToken:   secrets.Default(loadedSecrets, "service-token", authToken),
		Upload: types.UploadConfig{
			Bucket:   bucket,
			Prefix:   prefix,
			Endpoint: secrets.Default(loadedSecrets, "s3-endpoint", endpoint),
		},
	}

	var uploader upload.Uploader
	if cfg.Upload.Bucket != "" {
		u, err := upload.NewS3Uploader(cmd.Context(), cfg.Upload)
		if err != nil {
			return err
		}
		uploader = u
		fmt.Fprintf(os.Stderr, "Uploading artifacts to s3://%s\n", cfg.Upload.Bucket)
	} else {
		uploader = upload.NewDirUploader(cfg.ArtifactDir, cfg.BaseURL+"/artifacts")
		fmt.Fprintf(os.Stderr, "Self-hosting artifacts from %s\n", cfg.ArtifactDir)
	}

	h := &server.Handler{
		Extractor: &tabular.PDFExtractor{},
		Uploader:  uploader,
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   defaultTimeout,
				UserAgent: defaultUserAgent,
			},
			WorkDir: workDir,
		},
		AuthToken: cfg.AuthToken,
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	h.Attach(r)
	if cfg.Upload.Bucket == "" {
		fileServer := http.StripPrefix("/artifacts/", http.FileServer(http.Dir(cfg.ArtifactDir)))
		r.Get("/artifacts/*", fileServer.ServeHTTP)
	}

	fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.Addr)
	return http.ListenAndServe(cfg.Addr, r)
}
