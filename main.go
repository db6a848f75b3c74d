package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hoshinonyaruko/snake-classic/api"
	"github.com/hoshinonyaruko/snake-classic/config"
	"github.com/hoshinonyaruko/snake-classic/memimg"
	"github.com/hoshinonyaruko/snake-classic/runlog"
	"github.com/hoshinonyaruko/snake-classic/scoreboard"
	"github.com/hoshinonyaruko/snake-classic/session"
	"github.com/hoshinonyaruko/snake-classic/snake"
	"github.com/hoshinonyaruko/snake-classic/sqlite"
	"github.com/hoshinonyaruko/snake-classic/term"
)

func main() {
	termMode := flag.Bool("term", false, "play in the terminal instead of serving HTTP")
	configPath := flag.String("config", "./config.json", "config file (.json, .yaml or .yml)")
	flag.Parse()

	// Initialize the configuration
	cfg := config.LoadConfig(*configPath)
	EnsureFoldersExist(cfg.SpriteDir, cfg.StaticDir, filepath.Dir(cfg.ScoreFile), filepath.Dir(cfg.RunLog))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *termMode {
		// 终端模式下日志会弄乱画面，写到文件里
		logFile, err := os.OpenFile(filepath.Join(filepath.Dir(cfg.RunLog), "snake.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatalf("Failed to open log file: %s", err)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	board := scoreboard.NewBoard(openScoreStore(), snake.Classic.String())

	runs, err := runlog.Open(config.GetConfigValue("runlog").(string))
	if err != nil {
		log.Fatalf("Failed to open run log: %s", err)
	}
	defer runs.Close()

	// 载入贴图到内存 检测并热更新
	if err := memimg.LoadSprites(cfg.SpriteDir, snake.CellSize); err != nil {
		log.Printf("Sprites unavailable, drawing plain cells: %s", err)
	} else {
		go func() {
			if err := memimg.WatchSprites(ctx, cfg.SpriteDir); err != nil {
				log.Printf("Sprite hot reload disabled: %s", err)
			}
		}()
	}

	var rng *rand.Rand
	if seed := config.GetConfigValue("seed").(int64); seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}
	sess := session.New(snake.NewGame(rng), board, runs, session.Options{
		FeedbackPauses: config.GetConfigValue("feedbackpauses").(bool),
	})
	go sess.Run(ctx)

	if *termMode {
		runTerminal(ctx, sess)
		return
	}
	serve(ctx, sess, cfg)
}

// openScoreStore picks the high-score backend from the configuration.
func openScoreStore() scoreboard.Store {
	if config.GetConfigValue("scorestore").(string) == "sqlite" {
		db, err := sqlite.InitDB(config.GetConfigValue("dbpath").(string))
		if err != nil {
			log.Fatalf("Failed to open score database: %s", err)
		}
		// 进程结束时由系统关闭
		return sqlite.NewHighScoreStore(db)
	}
	return scoreboard.NewFileStore(config.GetConfigValue("scorefile").(string))
}

func runTerminal(ctx context.Context, sess *session.Session) {
	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %s", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to initialize screen: %s", err)
	}
	defer screen.Fini()

	if err := term.New(screen, sess).Run(ctx); err != nil {
		log.Printf("Terminal driver stopped: %s", err)
	}
}

func serve(ctx context.Context, sess *session.Session, cfg *config.AppConfig) {
	hub := api.NewHub()
	go hub.Run(ctx)
	sess.Subscribe(hub.BroadcastEvent)

	router := api.NewRouter(sess, hub, api.Options{StaticDir: cfg.StaticDir, SelfPath: cfg.SelfPath})
	// 从配置单例读取端口 监听
	srv := &http.Server{Addr: ":" + config.GetConfigValue("port").(string), Handler: router}

	go func() {
		log.Printf("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %s", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %s", err)
	}
}

// EnsureFoldersExist 检查并创建必需的文件夹
func EnsureFoldersExist(folders ...string) {
	for _, folder := range folders {
		if folder == "" || folder == "." {
			continue
		}
		if _, err := os.Stat(folder); os.IsNotExist(err) {
			// 文件夹不存在，尝试创建它
			if err := os.MkdirAll(folder, 0755); err != nil {
				log.Fatalf("Failed to create %s directory: %s", folder, err)
			}
			log.Printf("Created %s directory", folder)
		}
	}
}
