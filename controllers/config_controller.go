// Package controllers controllers/config_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kiddushware/logger"
	"kiddushware/middleware"
	"kiddushware/models"
	"kiddushware/services"
	"kiddushware/store"
)

// ConfigController manages display configurations: the admin-owned
// definitions of each public calendar or sponsorship form.
type ConfigController struct {
	Store *store.Store
}

// NewConfigController builds the controller against the store.
func NewConfigController(s *store.Store) *ConfigController {
	return &ConfigController{Store: s}
}

// configView decorates a configuration with its share surfaces for the
// dashboard template.
type configView struct {
	models.Configuration
	DirectLink string
	EmbedCode  string
}

// ShowDashboard renders the admin dashboard with the owner's
// configurations, direct links and embed snippets.
func (cc *ConfigController) ShowDashboard(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)
	configs, err := cc.Store.ListConfigurations(ownerID)
	if err != nil {
		logger.Error.Printf("ShowDashboard: %v", err)
		c.HTML(http.StatusInternalServerError, "admin.html", gin.H{"Error": "Error loading configurations."})
		return
	}

	views := make([]configView, 0, len(configs))
	for _, cfg := range configs {
		views = append(views, configView{
			Configuration: cfg,
			DirectLink:    services.PublicDisplayURL(cfg.ID),
			EmbedCode:     services.EmbedCode(cfg.ID),
		})
	}
	c.HTML(http.StatusOK, "admin.html", gin.H{"Configurations": views})
}

// CreateConfiguration handles the dashboard's create form.
func (cc *ConfigController) CreateConfiguration(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)
	cfg := &models.Configuration{
		UserID:            ownerID,
		Title:             c.PostForm("title"),
		Type:              c.PostForm("type"),
		NotificationEmail: c.PostForm("notificationEmail"),
		PaymentSettings:   paymentSettingsFromForm(c),
		DisplaySettings: models.DisplaySettings{
			Color: c.PostForm("displayColor"),
			Font:  c.PostForm("displayFont"),
		},
	}

	if _, err := cc.Store.CreateConfiguration(cfg); err != nil {
		logger.Error.Printf("CreateConfiguration: %v", err)
		c.HTML(http.StatusBadRequest, "admin.html", gin.H{"Error": "Error saving configuration."})
		return
	}
	c.Redirect(http.StatusFound, "/admin")
}

// UpdateConfiguration handles the dashboard's edit form.
func (cc *ConfigController) UpdateConfiguration(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)
	cfg := &models.Configuration{
		ID:                c.Param("id"),
		UserID:            ownerID,
		Title:             c.PostForm("title"),
		Type:              c.PostForm("type"),
		NotificationEmail: c.PostForm("notificationEmail"),
		PaymentSettings:   paymentSettingsFromForm(c),
		DisplaySettings: models.DisplaySettings{
			Color: c.PostForm("displayColor"),
			Font:  c.PostForm("displayFont"),
		},
	}

	if err := cc.Store.UpdateConfiguration(cfg); err != nil {
		logger.Error.Printf("UpdateConfiguration %s: %v", cfg.ID, err)
		c.HTML(http.StatusBadRequest, "admin.html", gin.H{"Error": "Error updating configuration."})
		return
	}
	c.Redirect(http.StatusFound, "/admin")
}

// DeleteConfiguration removes one of the owner's configurations.
func (cc *ConfigController) DeleteConfiguration(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)
	if err := cc.Store.DeleteConfiguration(c.Param("id"), ownerID); err != nil {
		logger.Error.Printf("DeleteConfiguration %s: %v", c.Param("id"), err)
		c.HTML(http.StatusBadRequest, "admin.html", gin.H{"Error": "Error deleting configuration."})
		return
	}
	c.Redirect(http.StatusFound, "/admin")
}

// GetQRCode serves a PNG QR code pointing at the configuration's public
// display, for print flyers and bulletin boards.
func (cc *ConfigController) GetQRCode(c *gin.Context) {
	png, err := services.GenerateQRCode(c.Param("id"), 256)
	if err != nil {
		logger.Error.Printf("GetQRCode: %v", err)
		c.String(http.StatusInternalServerError, "Failed to generate QR code")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// paymentSettingsFromForm reads the nested payment options off the config
// form. Checkboxes post "on" when ticked and nothing otherwise.
func paymentSettingsFromForm(c *gin.Context) models.PaymentSettings {
	return models.PaymentSettings{
		Check: models.CheckSettings{
			Enabled:    c.PostForm("checkEnabled") == "on",
			PayableTo:  c.PostForm("checkPayableTo"),
			FullAmount: c.PostForm("checkFullAmount"),
			HalfAmount: c.PostForm("checkHalfAmount"),
		},
		Card: models.CardSettings{
			Enabled:          c.PostForm("cardEnabled") == "on",
			FullKiddushPrice: c.PostForm("cardFullPrice"),
			FullKiddushLink:  c.PostForm("cardFullLink"),
			HalfKiddushPrice: c.PostForm("cardHalfPrice"),
			HalfKiddushLink:  c.PostForm("cardHalfLink"),
		},
	}
}
