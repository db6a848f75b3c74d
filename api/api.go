package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/hoshinonyaruko/snake-classic/render"
	"github.com/hoshinonyaruko/snake-classic/runlog"
	"github.com/hoshinonyaruko/snake-classic/session"
	"github.com/hoshinonyaruko/snake-classic/structs"
)

// renderFile is the name of the board image inside the static directory.
const renderFile = "board.png"

var errUnknownCommand = errors.New("unknown command")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Options carries the paths the router needs from the configuration.
type Options struct {
	StaticDir string
	SelfPath  string
}

// NewRouter registers every route over sess. Events reach websocket clients
// through hub, which the caller must run.
func NewRouter(sess *session.Session, hub *Hub, opts Options) *gin.Engine {
	router := gin.Default()
	// 命令
	router.POST("/start", CommandHandler(sess, "start"))
	router.POST("/pause", CommandHandler(sess, "pause"))
	router.POST("/menu", CommandHandler(sess, "menu"))
	router.POST("/turn", CommandHandler(sess, "turn"))
	router.POST("/mode", CommandHandler(sess, "mode"))
	// 查询
	router.GET("/state", StateHandler(sess))
	router.GET("/scores", ScoresHandler(sess))
	router.GET("/runs", RunsHandler(sess))
	// 渲染函数 返回静态地址
	router.GET("/render-map", RenderMapHandler(sess, opts))
	router.GET("/ws", ServeWs(hub, sess))
	router.Static("/static", opts.StaticDir)
	return router
}

// commandValue picks the query parameter each command reads.
func commandValue(c *gin.Context, command string) (string, bool) {
	switch command {
	case "turn":
		return c.GetQuery("direction")
	case "mode":
		return c.GetQuery("name")
	}
	return "", true
}

// CommandHandler applies command. A command the current state ignores is
// answered with accepted=false; a missing or malformed parameter is a 400.
func CommandHandler(sess *session.Session, command string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, ok := commandValue(c, command)
		if !ok || (value == "" && (command == "turn" || command == "mode")) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("missing parameter for %s", command)})
			return
		}

		accepted, err := applyCommand(sess, command, value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"accepted": accepted, "state": sess.State()})
	}
}

// applyCommand runs one named command against sess. It is shared by the HTTP
// routes and websocket clients.
func applyCommand(sess *session.Session, command, value string) (bool, error) {
	switch strings.ToLower(command) {
	case "start":
		return sess.Start(), nil
	case "pause":
		return sess.TogglePause(), nil
	case "menu":
		return sess.ReturnToMenu(), nil
	case "turn":
		dir, err := structs.ParseDirection(value)
		if err != nil {
			return false, err
		}
		return sess.Turn(dir), nil
	case "mode":
		return sess.SelectMode(value)
	}
	return false, fmt.Errorf("%w: %q", errUnknownCommand, command)
}

func StateHandler(sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, sess.Snapshot())
	}
}

func ScoresHandler(sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"scores": sess.Scores(), "high_score": sess.HighScore()})
	}
}

// RunsHandler returns the finished runs from the run log.
func RunsHandler(sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := sess.RunLogPath()
		if path == "" {
			c.JSON(http.StatusOK, gin.H{"runs": []runlog.Record{}})
			return
		}
		records, err := runlog.ReadAll(path)
		if err != nil {
			log.Printf("Failed to read run log %s: %s", path, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to read run log"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"runs": records})
	}
}

// RenderMapHandler draws the current snapshot into the static directory and
// returns its address.
func RenderMapHandler(sess *session.Session, opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := filepath.Join(opts.StaticDir, renderFile)
		if err := render.SavePNG(sess.Snapshot(), sess.HighScore(), path); err != nil {
			log.Printf("Render failed: %s", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to render map"})
			return
		}
		imageUrl := fmt.Sprintf("http://%s/static/%s", opts.SelfPath, renderFile)
		c.JSON(http.StatusOK, gin.H{"image_url": imageUrl})
	}
}

// ServeWs upgrades the request and attaches a client to hub.
func ServeWs(hub *Hub, sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("Websocket upgrade failed: %s", err)
			return
		}
		client := NewClient(hub, sess, conn)
		client.Register()
		go client.WritePump()
		go client.ReadPump()
	}
}
