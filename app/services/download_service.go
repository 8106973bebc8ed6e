package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/inkstore/app/models"
	"github.com/shashiranjanraj/inkstore/app/repositories"
	"github.com/shashiranjanraj/inkstore/config"
	"github.com/shashiranjanraj/inkstore/pkg/auth"
	"github.com/shashiranjanraj/inkstore/pkg/crypt"
	"github.com/shashiranjanraj/inkstore/pkg/storage"
)

// downloadClaims is what a mint link carries: the file to serve and a hard
// expiry. The token is an encrypted blob, so the claims are tamper-proof
// without a server-side store.
type downloadClaims struct {
	UserID    uint      `json:"uid"`
	ProductID uint      `json:"pid"`
	Path      string    `json:"path"`
	ExpiresAt time.Time `json:"exp"`
}

// DownloadLink is the signed, expiring handle returned to the customer.
type DownloadLink struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DownloadService mints short-lived links for owned books and resolves them
// back into file streams. Courses are external (courseUrl), so their link
// endpoint just echoes the URL.
type DownloadService struct {
	products *repositories.ProductRepository
	library  *LibraryService
}

func NewDownloadService() *DownloadService {
	return &DownloadService{
		products: repositories.NewProductRepository(),
		library:  NewLibraryService(),
	}
}

// AccessLink resolves the delivery handle for an owned product. Books get
// a minted expiring token, courses get their external URL directly.
// Ownership is checked before the product is even looked up, so a caller
// who owns nothing sees the same ErrNotFound whether the id is a draft,
// a published product or garbage.
func (s *DownloadService) AccessLink(p auth.Principal, productID uint) (DownloadLink, error) {
	owns, err := s.library.Owns(p, productID)
	if err != nil {
		return DownloadLink{}, err
	}
	if !owns {
		return DownloadLink{}, ErrNotFound
	}

	product, err := s.products.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DownloadLink{}, ErrNotFound
		}
		return DownloadLink{}, err
	}

	if !product.IsBook() {
		return DownloadLink{URL: product.CourseURL}, nil
	}
	// Externally hosted books are handed out as-is; tokens only guard
	// files served from our own storage disks.
	if strings.HasPrefix(product.FileURL, "http://") || strings.HasPrefix(product.FileURL, "https://") {
		return DownloadLink{URL: product.FileURL}, nil
	}
	return s.mint(p.UserID, product)
}

func (s *DownloadService) mint(userID uint, product models.Product) (DownloadLink, error) {
	expires := time.Now().Add(config.DownloadLinkTTL())
	token, err := crypt.EncryptJSON(downloadClaims{
		UserID:    userID,
		ProductID: product.ID,
		Path:      product.FileURL,
		ExpiresAt: expires,
	})
	if err != nil {
		return DownloadLink{}, err
	}
	return DownloadLink{
		Token:     token,
		URL:       "/api/downloads/" + token,
		ExpiresAt: expires,
	}, nil
}

// Resolve decrypts a link token and returns the storage path to stream.
// Expired or undecodable tokens both surface as ErrLinkExpired; the caller
// cannot distinguish tampering from lateness, and does not need to.
func (s *DownloadService) Resolve(token string) (string, error) {
	var claims downloadClaims
	if err := crypt.DecryptJSON(token, &claims); err != nil {
		return "", ErrLinkExpired
	}
	if time.Now().After(claims.ExpiresAt) {
		return "", ErrLinkExpired
	}
	path := strings.TrimPrefix(claims.Path, "/")
	if storage.Missing(path) {
		return "", ErrNotFound
	}
	return path, nil
}
