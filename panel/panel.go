// Package panel serves the owner's web panel: list every registered client
// and flip their authorization. It is meant for a trusted network; there is
// no login in front of it.
package panel

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/feliperocha/barberbot/store"
)

// ClientDirectory is the slice of the client store the panel needs.
type ClientDirectory interface {
	List() (map[string]store.Client, error)
	ToggleAuthorization(phone string) error
}

const (
	listErrorText   = "Erro ao carregar painel."
	toggleErrorText = "Erro ao atualizar permissão."
)

const pageTemplate = `<!DOCTYPE html>
<html lang="pt-BR">
<head><meta charset="utf-8"><title>Painel de Clientes - Barbearia</title></head>
<body>
<h1>Painel de Clientes - Barbearia</h1>
<table border="1">
<tr><th>Telefone</th><th>Nome</th><th>Permitido</th><th>Ação</th></tr>
{{range .Clients}}<tr>
<td>{{.Phone}}</td>
<td>{{.Name}}</td>
<td>{{if .Allowed}}Sim{{else}}Não{{end}}</td>
<td><form action="/toggle/{{.Phone}}" method="POST"><button type="submit">{{if .Allowed}}Bloquear{{else}}Permitir{{end}}</button></form></td>
</tr>{{end}}
</table>
</body>
</html>
`

type Server struct {
	directory ClientDirectory
	log       zerolog.Logger
	engine    *gin.Engine
}

func New(directory ClientDirectory, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.SetHTMLTemplate(template.Must(template.New("panel").Parse(pageTemplate)))

	s := &Server{directory: directory, log: log, engine: engine}
	engine.GET("/", s.index)
	engine.POST("/toggle/:phone", s.toggle)
	return s
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves the panel until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) index(c *gin.Context) {
	clients, err := s.directory.List()
	if err != nil {
		s.log.Error().Err(err).Msg("list clients")
		c.String(http.StatusOK, listErrorText)
		return
	}

	rows := make([]store.Client, 0, len(clients))
	for _, cl := range clients {
		rows = append(rows, cl)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Phone < rows[j].Phone })

	c.HTML(http.StatusOK, "panel", gin.H{"Clients": rows})
}

func (s *Server) toggle(c *gin.Context) {
	phone := c.Param("phone")
	if err := s.directory.ToggleAuthorization(phone); err != nil {
		s.log.Error().Err(err).Str("phone", phone).Msg("toggle authorization")
		c.String(http.StatusOK, toggleErrorText)
		return
	}
	c.Redirect(http.StatusFound, "/")
}
