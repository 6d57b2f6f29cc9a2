package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yizeng/gab/gin/gorm/secret-santa/docs"
	v1 "github.com/yizeng/gab/gin/gorm/secret-santa/internal/api/handler/v1"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/api/middleware"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/config"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/pkg/ratelimit"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/repository"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/repository/dao"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/service"
)

const drawRateLimitPrefix = "ratelimit:draw"

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	// Feed must be started with Run before clients connect.
	Feed *v1.PoolFeed
	// MemoryLimiter is set when Redis is not configured and needs periodic
	// sweeping.
	MemoryLimiter *ratelimit.MemoryLimiter

	drawLimiter ratelimit.Limiter
}

type handlers struct {
	auth         *v1.AuthHandler
	draw         *v1.DrawHandler
	game         *v1.GameHandler
	participant  *v1.ParticipantHandler
	registration *v1.RegistrationHandler
}

func NewServer(conf *config.AppConfig, db *gorm.DB, redisClient *redis.Client) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()
	// ClientIP only reads X-Forwarded-For from trusted proxies.
	if err := engine.SetTrustedProxies(conf.API.TrustedProxies); err != nil {
		zap.L().Error("invalid trusted proxies, ignoring X-Forwarded-For", zap.Error(err))
		_ = engine.SetTrustedProxies(nil)
	}

	s := &Server{
		Config: conf,
		Router: engine,
		Feed:   v1.NewPoolFeed(),
	}
	s.initDrawLimiter(redisClient)

	s.MountMiddlewares()

	gameSvc := s.initGameService(db)
	h := handlers{
		auth:         s.initAuthHandler(),
		draw:         s.initDrawHandler(db, gameSvc),
		game:         v1.NewGameHandler(gameSvc),
		participant:  s.initParticipantHandler(db),
		registration: s.initRegistrationHandler(db),
	}
	s.MountHandlers(h)

	return s
}

func (s *Server) initDrawLimiter(redisClient *redis.Client) {
	rl := s.Config.RateLimit
	if redisClient != nil {
		s.drawLimiter = ratelimit.NewRedisLimiter(redisClient, drawRateLimitPrefix, rl.DrawRequests, rl.Window)
		return
	}

	s.MemoryLimiter = ratelimit.NewMemoryLimiter(rl.DrawRequests, rl.Window)
	s.drawLimiter = s.MemoryLimiter
}

func (s *Server) initAuthHandler() *v1.AuthHandler {
	svc := service.NewAuthService(s.Config.API.AdminUsername, s.Config.API.AdminPasswordHash)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initGameService(db *gorm.DB) *service.GameService {
	settingDAO := dao.NewGameSettingDAO(db)
	repo := repository.NewGameRepository(settingDAO)

	return service.NewGameService(repo)
}

func (s *Server) initDrawHandler(db *gorm.DB, gameSvc *service.GameService) *v1.DrawHandler {
	participantDAO := dao.NewParticipantDAO(db)
	repo := repository.NewParticipantRepository(participantDAO)
	svc := service.NewDrawService(repo, gameSvc, s.Feed)
	handler := v1.NewDrawHandler(svc)

	return handler
}

func (s *Server) initParticipantHandler(db *gorm.DB) *v1.ParticipantHandler {
	participantDAO := dao.NewParticipantDAO(db)
	repo := repository.NewParticipantRepository(participantDAO)
	svc := service.NewParticipantService(repo)
	handler := v1.NewParticipantHandler(svc)

	return handler
}

func (s *Server) initRegistrationHandler(db *gorm.DB) *v1.RegistrationHandler {
	registrationDAO := dao.NewRegistrationDAO(db)
	repo := repository.NewRegistrationRepository(registrationDAO)
	svc := service.NewRegistrationService(repo)
	handler := v1.NewRegistrationHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/draw", middleware.RateLimit(s.drawLimiter), h.draw.HandleDraw)
		public.GET("/health", v1.HandleHealthcheck)
		public.GET("/game/status", h.game.HandleGetStatus)
		public.POST("/registrations", h.registration.HandleRequestJoin)
		public.POST("/participants/pin", h.participant.HandleSetPIN)
		public.POST("/admin/login", h.auth.HandleLogin)
	}

	admin := s.Router.Group(basePath+"/admin", middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		admin.PUT("/game/status", h.game.HandleUpdateStatus)

		admin.GET("/participants", h.participant.HandleListParticipants)
		admin.POST("/participants", h.participant.HandleAddParticipants)
		admin.POST("/participants/reset", h.participant.HandleResetPool)
		admin.GET("/participants/export", h.participant.HandleExportAssignments)
		admin.PUT("/participants/:participantID", h.participant.HandleUpdateParticipant)
		admin.DELETE("/participants/:participantID", h.participant.HandleDeleteParticipant)

		admin.GET("/pool/stats", h.participant.HandlePoolStats)
		admin.GET("/pool/orphans", h.participant.HandleOrphanedClaims)
		admin.POST("/pool/orphans/:participantID/release", h.participant.HandleReleaseOrphanedClaim)
		admin.GET("/pool/feed", s.Feed.HandleWebSocket)

		admin.GET("/registrations", h.registration.HandleListPending)
		admin.PUT("/registrations/:registrationID", h.registration.HandleUpdatePending)
		admin.POST("/registrations/:registrationID/approve", h.registration.HandleApprove)
		admin.DELETE("/registrations/:registrationID", h.registration.HandleReject)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Secret Santa API"
	docs.SwaggerInfo.Description = "Gift-exchange draw service."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
