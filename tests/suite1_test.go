package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/suite"

	sel "github.com/goserg/storeserver/tests/selectors"
)

type TestSuite1 struct {
	suite.Suite
	process *Process
}

var (
	serverConfigPath string
	authConfigPath   string
	botConfigPath    string
)

func init() {
	flag.StringVar(&serverConfigPath, "server-config", "", "path to server configs")
	flag.StringVar(&authConfigPath, "auth-config", "", "path to auth configs")
	flag.StringVar(&botConfigPath, "bot-config", "", "path to bot configs")
}

func (s *TestSuite1) SetupSuite() {
	fmt.Println("setupSuite")
	s.Require().NotEmpty(serverConfigPath, "-server-config MUST be set")
	s.Require().NotEmpty(authConfigPath, "-auth-config MUST be set")
	s.Require().NotEmpty(botConfigPath, "-bot-config MUST be set")
	p := NewProcess(context.Background(), "../bin/server",
		"-server-config", serverConfigPath,
		"-auth-config", authConfigPath,
		"-bot-config", botConfigPath)
	s.process = p
	err := p.Start(context.Background())
	if err != nil {
		s.T().Errorf("cant start process: %v", err)
	}

	if err := waitForStartup(time.Second * 5); err != nil {
		s.T().Fatalf("unable to start app: %v", err)
	}
}

func waitForStartup(duration time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	ticker := time.NewTicker(time.Second / 2)
	for {
		select {
		case <-ticker.C:
			r, _ := http.Get("http://0.0.0.0:3000/")
			if r != nil && r.StatusCode == http.StatusOK {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *TestSuite1) TearDownSuite() {
	fmt.Println("teardown Suite1")
	exitCode, err := s.process.Stop()
	if err != nil {
		s.T().Logf("cant stop process: %v", err)
	}
	s.T().Logf("process finished with code %d", exitCode)
}

func (s *TestSuite1) TestHandlers() {
	fmt.Println("test handlers")
	defer fmt.Println("test finished")

	ctx, cancelTimeout := context.WithTimeout(context.Background(), time.Second*15)
	defer cancelTimeout()

	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	var logo string
	err := chromedp.Run(ctx,
		s.CheckGuestAccessGranted(`http://0.0.0.0:3000/`),
		s.CheckGuestAccessGranted(`http://0.0.0.0:3000/stores`),
		s.CheckGuestAccessGranted(`http://0.0.0.0:3000/tags`),
		s.CheckGuestAccessGranted(`http://0.0.0.0:3000/top`),
		s.CheckGuestAccessGranted(`http://0.0.0.0:3000/map`),
		s.CheckGuestAccessGranted(`http://0.0.0.0:3000/login`),
		s.CheckGuestAccessGranted(`http://0.0.0.0:3000/register`),
		s.CheckGuestAccessGranted(`http://0.0.0.0:3000/account/forgot`),
		s.CheckGuestRedirected(`http://0.0.0.0:3000/hearts`, "/login"),
		s.CheckGuestRedirected(`http://0.0.0.0:3000/add`, "/login"),
		chromedp.Navigate(`http://0.0.0.0:3000/`),
		chromedp.Text(sel.Logo, &logo),
		chromedp.ActionFunc(func(ctx context.Context) error {
			if logo != "Store Directory" {
				err := errors.New("invalid logo text: " + logo)
				var screenShot []byte
				chromedp.FullScreenshot(&screenShot, 80).Do(ctx)
				if errW := os.WriteFile("invalid_logo.png", screenShot, 0o644); errW != nil {
					return errors.Join(errW, err)
				}
				return err
			}
			return nil
		}),
	)

	if err != nil {
		s.T().Fatalf(err.Error())
	}
	s.Equal("Store Directory", logo)
}

func (s *TestSuite1) TestRegisterAndAddStore() {
	fmt.Println("test register and add store")

	ctx, cancelTimeout := context.WithTimeout(context.Background(), time.Second*30)
	defer cancelTimeout()

	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	var location string
	err := chromedp.Run(ctx,
		chromedp.Navigate(`http://0.0.0.0:3000/register`),
		chromedp.SendKeys(sel.RegisterFormName, "e2e tester"),
		chromedp.SendKeys(sel.RegisterFormEmail, "e2e@example.com"),
		chromedp.SendKeys(sel.RegisterFormPassword, "e2e-password"),
		chromedp.SendKeys(sel.RegisterFormPasswordConfirm, "e2e-password"),
		chromedp.Click(sel.RegisterFormSubmit),
		chromedp.WaitVisible(sel.Flash),

		chromedp.Navigate(`http://0.0.0.0:3000/add`),
		chromedp.SendKeys(sel.StoreFormName, "E2E Store"),
		chromedp.Click(sel.StoreFormSubmit),
		chromedp.WaitVisible(sel.Flash),
		chromedp.Location(&location),
	)
	if err != nil {
		s.T().Fatalf(err.Error())
	}
	s.True(strings.HasSuffix(location, "/store/e2e-store"), "expected store page, got %s", location)

	// the freshly created store must be served by the typeahead endpoint
	r, err := http.Get("http://0.0.0.0:3000/api/suggest?q=e2e")
	if err != nil {
		s.T().Fatalf("suggest request failed: %v", err)
	}
	defer r.Body.Close()
	s.Equal(http.StatusOK, r.StatusCode)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.T().Fatalf("cant read suggest response: %v", err)
	}
	s.Contains(string(body), "E2E Store")
}

func (s *TestSuite1) CheckGuestAccessGranted(path string) chromedp.Tasks {
	return []chromedp.Action{
		chromedp.ActionFunc(func(ctx context.Context) error {
			resp, err := chromedp.RunResponse(ctx,
				chromedp.Navigate(path))
			if err != nil {
				return err
			}
			s.assertStatus(resp, path, http.StatusOK)
			return nil
		}),
	}
}

func (s *TestSuite1) assertStatus(resp *network.Response, path string, want int64) {
	if resp == nil {
		s.T().Errorf("no response from %s", path)
		return
	}
	if resp.Status != want {
		s.T().Errorf("opening %s must answer %d, server answered %d", path, want, resp.Status)
	}
}

func (s *TestSuite1) CheckGuestRedirected(path string, wantSuffix string) chromedp.Tasks {
	return []chromedp.Action{
		chromedp.ActionFunc(func(ctx context.Context) error {
			if _, err := chromedp.RunResponse(ctx, chromedp.Navigate(path)); err != nil {
				return err
			}
			var location string
			if err := chromedp.Location(&location).Do(ctx); err != nil {
				return err
			}
			if !strings.HasSuffix(location, wantSuffix) {
				s.T().Errorf("guests opening %s must end up on %s, got %s", path, wantSuffix, location)
			}
			return nil
		}),
	}
}
